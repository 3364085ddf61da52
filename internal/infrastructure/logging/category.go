package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	Internal        Category = "Internal"
	Redis           Category = "Redis"
	RabbitMQ        Category = "RabbitMQ"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Upstream        Category = "Upstream"
	Session         Category = "Session"
	Booking         Category = "Booking"
	WebSocket       Category = "WebSocket"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"

	// Upstream
	GraphQL SubCategory = "GraphQL"

	// Booking
	Create SubCategory = "Create"
	Cancel SubCategory = "Cancel"
	Notify SubCategory = "Notify"

	// Session
	Login  SubCategory = "Login"
	Signup SubCategory = "Signup"
	Logout SubCategory = "Logout"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	ClientID     ExtraKey = "ClientId"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	BodySize     ExtraKey = "BodySize"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	RoomID       ExtraKey = "RoomId"
	EventID      ExtraKey = "EventId"
	UserID       ExtraKey = "UserId"
	Hour         ExtraKey = "Hour"
	Operation    ExtraKey = "Operation"
	ErrorMessage ExtraKey = "ErrorMessage"
)
