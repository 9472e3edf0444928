package event

const UserRegisteredDestination string = "auth.user.registered"

type UserRegisteredMessage struct {
	AccountID      int64  `json:"account_id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FactorStrategy string `json:"factor_strategy"`
}
