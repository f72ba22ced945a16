package payments

type TopUpRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=CASH CARD ONLINE"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}
