package util

const (
	MedicineCollection = "medicineDB"
	InsulinProbeName   = "Insulin"
)

// Client facing messages.
const (
	MISSING_QUERY_PARAMETER        = "Missing 'query' parameter"
	MISSING_NAME_PARAMETER         = "Missing 'name' query parameter"
	MISSING_REQUIRED_NAME          = "Missing required query parameter: name"
	MISSING_SUB_CATEGORY_PARAMETER = "Missing 'sub_category' query parameter"
	INVALID_QUERY_ENCODING         = "Query parameters must be valid UTF-8"

	MEDICINE_NOT_FOUND            = "Medicine not found"
	NO_MEDICINES_FOR_NAME         = "No medicines found for this name"
	NO_MEDICINES_FOR_SUB_CATEGORY = "No medicines found for this sub category"
	NO_MATCHES_FOUND              = "No matches found"
	MEDICINE_ADDED_SUCCESSFULLY   = "Medicine added successfully"
	ERROR_FETCHING_MEDICINES      = "Error fetching medicines"
	ERROR_ADDING_MEDICINE         = "Error adding medicine"
	SERVER_ERROR                  = "Server error"
	INVALID_REQUEST_BODY          = "Invalid request body"
	INTERNAL_ERROR                = "internal server error"
	STORE_UNAVAILABLE             = "unavailable"
	STORE_AVAILABLE               = "ok"
)
