package refdata

import "github.com/harborline/disruption-shield/internal/contracts"

// Weather is the mock forecast attached to a location.
type Weather struct {
	Risk      contracts.RiskTier `json:"risk"`
	Detail    string             `json:"detail"`
	TempC     int                `json:"temp_c"`
	Condition string             `json:"condition"`
}

// Location is one shipping location with its current weather and, when
// active, a disruption event.
type Location struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Country    string                `json:"country"`
	Type       contracts.NodeType    `json:"type"`
	Lat        float64               `json:"lat"`
	Lng        float64               `json:"lng"`
	Weather    Weather               `json:"weather"`
	Disruption *contracts.Disruption `json:"disruption,omitempty"`
}

func (l Location) Node() contracts.Node {
	return contracts.Node{
		ID:         l.ID,
		Name:       l.Name,
		Lat:        l.Lat,
		Lng:        l.Lng,
		Type:       l.Type,
		Disruption: l.Disruption,
	}
}

var defaultWeather = Weather{
	Risk:      contracts.TierLow,
	Detail:    "No weather data available for this location, assuming clear conditions",
	TempC:     20,
	Condition: "Unknown",
}

// seedLocations covers ten major Indian ports. Weather and disruption state
// is static demo data refreshed only by redeploys.
var seedLocations = []Location{
	{
		ID: "port_jnpt", Name: "Nhava Sheva (JNPT)", Country: "India", Type: contracts.NodePort, Lat: 18.9490, Lng: 72.9510,
		Weather: Weather{Risk: contracts.TierHigh, Detail: "Monsoon season: heavy rainfall and waterlogging near port, reduced crane operations", TempC: 29, Condition: "Heavy Rain"},
		Disruption: &contracts.Disruption{
			Type: contracts.DisruptionCongestion, Severity: contracts.TierHigh, ExtraDelayDays: 3.0,
			Detail: "Severe container backlog, 30+ vessels anchored waiting for berth",
		},
	},
	{
		ID: "port_chennai", Name: "Chennai", Country: "India", Type: contracts.NodePort, Lat: 13.0827, Lng: 80.2707,
		Weather: Weather{Risk: contracts.TierMedium, Detail: "Northeast monsoon bringing moderate to heavy rainfall, intermittent cargo handling delays", TempC: 30, Condition: "Rain"},
		Disruption: &contracts.Disruption{
			Type: contracts.DisruptionCustomsDelay, Severity: contracts.TierMedium, ExtraDelayDays: 2.0,
			Detail: "New customs inspection mandate, 100% container scanning backlog",
		},
	},
	{
		ID: "port_kochi", Name: "Kochi", Country: "India", Type: contracts.NodePort, Lat: 9.9312, Lng: 76.2673,
		Weather: Weather{Risk: contracts.TierMedium, Detail: "Southwest monsoon active, moderate rainfall and slight berthing delays", TempC: 28, Condition: "Moderate Rain"},
	},
	{
		ID: "port_visakhapatnam", Name: "Visakhapatnam", Country: "India", Type: contracts.NodePort, Lat: 17.6868, Lng: 83.2185,
		Weather: Weather{Risk: contracts.TierHigh, Detail: "Cyclone warning in Bay of Bengal, vessel movements restricted", TempC: 31, Condition: "Cyclone Warning"},
		Disruption: &contracts.Disruption{
			Type: contracts.DisruptionWeather, Severity: contracts.TierHigh, ExtraDelayDays: 4.0,
			Detail: "Cyclone-related port closure, all vessel movements suspended",
		},
	},
	{
		ID: "port_mundra", Name: "Mundra", Country: "India", Type: contracts.NodePort, Lat: 22.8394, Lng: 69.7250,
		Weather: Weather{Risk: contracts.TierLow, Detail: "Clear and dry conditions, port operating at full capacity", TempC: 35, Condition: "Sunny"},
	},
	{
		ID: "port_haldia", Name: "Kolkata (Haldia)", Country: "India", Type: contracts.NodePort, Lat: 22.0257, Lng: 88.0583,
		Weather: Weather{Risk: contracts.TierHigh, Detail: "Heavy rainfall and river flooding, draft restrictions in effect", TempC: 33, Condition: "Heavy Rain"},
		Disruption: &contracts.Disruption{
			Type: contracts.DisruptionCongestion, Severity: contracts.TierMedium, ExtraDelayDays: 1.5,
			Detail: "Hooghly river silting, draft limited to 8m, larger vessels diverted",
		},
	},
	{
		ID: "port_kandla", Name: "Kandla", Country: "India", Type: contracts.NodePort, Lat: 23.0333, Lng: 70.2167,
		Weather: Weather{Risk: contracts.TierLow, Detail: "Clear skies with moderate temperatures, operating normally", TempC: 36, Condition: "Clear"},
		Disruption: &contracts.Disruption{
			Type: contracts.DisruptionEquipment, Severity: contracts.TierMedium, ExtraDelayDays: 1.5,
			Detail: "Crane maintenance backlog, only 60% of gantry cranes operational",
		},
	},
	{
		ID: "port_tuticorin", Name: "Tuticorin", Country: "India", Type: contracts.NodePort, Lat: 8.7642, Lng: 78.1348,
		Weather: Weather{Risk: contracts.TierLow, Detail: "Warm and dry conditions, operating at full capacity", TempC: 32, Condition: "Clear"},
	},
	{
		ID: "port_mangalore", Name: "New Mangalore", Country: "India", Type: contracts.NodePort, Lat: 12.9141, Lng: 74.8560,
		Weather: Weather{Risk: contracts.TierMedium, Detail: "Monsoon showers along the Karnataka coast, minor bulk handling delays", TempC: 27, Condition: "Light Rain"},
	},
	{
		ID: "port_paradip", Name: "Paradip", Country: "India", Type: contracts.NodePort, Lat: 20.2644, Lng: 86.6085,
		Weather: Weather{Risk: contracts.TierMedium, Detail: "Bay of Bengal low-pressure system, rough seas delaying vessel anchorage", TempC: 30, Condition: "Overcast"},
		Disruption: &contracts.Disruption{
			Type: contracts.DisruptionCongestion, Severity: contracts.TierMedium, ExtraDelayDays: 2.0,
			Detail: "Bulk cargo surge, coal and iron ore exports causing berthing delays",
		},
	},
}
