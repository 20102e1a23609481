package applications

import "talent-horizon/internal/domain"

// ServiceFeePercentage is the agency's cut of a cleared balance or refund.
const ServiceFeePercentage = 15

func ServiceFee(amount float64) float64 {
	return amount * (ServiceFeePercentage / 100.0)
}

// RefundAmount picks the amount fees are computed from: the patch's actual
// refund, else the patch's estimated refund, else the stored estimate. A
// present zero counts as present.
func RefundAmount(patch domain.TaxRefundPatch, stored domain.TaxRefundApplication) float64 {
	switch {
	case patch.ActualRefund != nil:
		return *patch.ActualRefund
	case patch.EstimatedRefund != nil:
		return *patch.EstimatedRefund
	default:
		return stored.EstimatedRefund
	}
}
