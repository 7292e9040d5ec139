package gateway

import (
	"github.com/dmitrijs2005/wghub/internal/client/models"
)

const servicePrefix = "/wghub.gateway.v1."

const (
	methodLogin         = servicePrefix + "AuthService/Login"
	methodRegister      = servicePrefix + "AuthService/Register"
	methodLogout        = servicePrefix + "AuthService/Logout"
	methodDeleteAccount = servicePrefix + "AuthService/DeleteAccount"
	methodCurrentUser   = servicePrefix + "AuthService/CurrentUser"

	methodPurgeUserData = servicePrefix + "UserService/PurgeData"

	methodAddDeviceToken    = servicePrefix + "DeviceService/AddToken"
	methodDeleteDeviceToken = servicePrefix + "DeviceService/DeleteToken"

	methodCreateHousehold = servicePrefix + "HouseholdService/Create"
	methodJoinHousehold   = servicePrefix + "HouseholdService/Join"
	methodLeaveHousehold  = servicePrefix + "HouseholdService/Leave"
	methodRemoveMember    = servicePrefix + "HouseholdService/RemoveMember"

	methodEntityCreate = servicePrefix + "EntityService/Create"
	methodEntityUpdate = servicePrefix + "EntityService/Update"
	methodEntityGet    = servicePrefix + "EntityService/Get"
	methodEntityDelete = servicePrefix + "EntityService/Delete"

	methodPing = servicePrefix + "HealthService/Ping"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type empty struct{}

type currentUserResponse struct {
	UserID string `json:"user_id"`
}

type deviceTokenRequest struct {
	DeviceID string `json:"device_id"`
	Token    string `json:"token,omitempty"`
}

type createHouseholdRequest struct {
	Name string `json:"name"`
}

type joinHouseholdRequest struct {
	InvitationCode string `json:"invitation_code"`
}

type householdRequest struct {
	HouseholdID string `json:"household_id"`
	UserID      string `json:"user_id,omitempty"`
}

type householdResponse struct {
	Household models.Household `json:"household"`
}

type entityRequest struct {
	Family models.Family `json:"family"`
	ID     string        `json:"id,omitempty"`
	Entity any           `json:"entity,omitempty"`
}

type entityResponse[T models.Entity] struct {
	Entity T `json:"entity"`
}

type pingResponse struct {
	Status string `json:"status"`
}
