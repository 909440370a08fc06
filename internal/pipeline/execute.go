package pipeline

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/harborline/disruption-shield/internal/contracts"
)

// ExecutePlan acknowledges a chosen recovery plan. It is a mock of the real
// booking systems: given a known option it always succeeds, otherwise it
// fails with ErrNotFound.
func ExecutePlan(productID, chosenOption, details string) (contracts.ExecutionRecord, error) {
	ref := strings.ToUpper(uuid.NewString()[:8])

	record := contracts.ExecutionRecord{
		ProductID:    productID,
		ChosenOption: chosenOption,
	}

	switch chosenOption {
	case OptionWait:
		record.Action = "monitoring_continued"
		record.Message = fmt.Sprintf("Continued monitoring for product %s. Alert thresholds updated.", productID)
	case OptionAirShipment:
		record.Action = "air_freight_booked"
		record.Message = fmt.Sprintf("Air freight booking confirmed for product %s. Estimated arrival: 2 days.", productID)
		record.BookingRef = "AIR-" + ref
	case OptionAltSupplier:
		record.Action = "supplier_engaged"
		record.Message = fmt.Sprintf("Alternate supplier contacted for product %s. PO issued, delivery in 3 days.", productID)
		record.BookingRef = "ALT-" + ref
		record.SupplierContacted = true
	default:
		return contracts.ExecutionRecord{}, fmt.Errorf("recovery option %q: %w", chosenOption, contracts.ErrNotFound)
	}

	if details != "" {
		record.Message += " Notes: " + details
	}
	return record, nil
}
