package model

// Slot names shared with the dialogue domain.
const (
	SlotDestination       = "destination"
	SlotTargetDestination = "target_destination"
	SlotUsername          = "username"
	SlotPassword          = "password"
	SlotIsAuthenticated   = "is_authenticated"
	SlotLastIntent        = "last_intent"
	SlotOrders            = "orders"
	SlotCountry           = "country"
	SlotRequested         = "requested_slot"

	SlotShowedPackageIDs = "showed_packages_ids"
	SlotNoMorePackages   = "no_more_packages"

	SlotUndesiredFlightIDs = "undesired_flight_ids"
	SlotNoAvailableFlight  = "no_available_flight"
	SlotUndesiredHotelIDs  = "undesired_hotel_ids"
	SlotNoAvailableRoom    = "no_available_room"
)

// Entity names read from the latest user message.
const (
	EntityCountry     = "country"
	EntityDestination = "destination"
)

// Intent names the actions branch on.
const (
	IntentBookPackage = "book_package"
	IntentQueryOrders = "query_orders"
)
