package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldWidgetKind  = "widget_kind"
	FieldSink        = "sink"
	FieldHabitID     = "habit_id"
	FieldWeekStart   = "week_start"
	FieldDate        = "date"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldCount       = "count"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStorage  = "storage"
	ComponentSnapshot = "snapshot"
	ComponentRollover = "rollover"
	ComponentSink     = "sink"
	ComponentBridge   = "bridge"
	ComponentTrigger  = "trigger"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentAppState = "appstate"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpRead      = "read"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpList      = "list"
	OpSync      = "sync"
	OpRollover  = "rollover"
	OpAggregate = "aggregate"
	OpBroadcast = "broadcast"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
