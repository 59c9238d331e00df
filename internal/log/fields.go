package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldYearMonth = "year_month"
	FieldAccount   = "account"
	FieldSlice     = "slice"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldPath      = "path"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentLedger     = "ledger"
	ComponentEvents     = "events"
	ComponentStorage    = "storage"
	ComponentAMQP       = "amqp"
	ComponentSheets     = "sheets"
	ComponentWorker     = "worker"
	ComponentSimulation = "simulation"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpExpand   = "expand"
	OpReplay   = "replay"
	OpWrite    = "write"
	OpPublish  = "publish"
	OpAppend   = "append"
	OpSnapshot = "snapshot"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

func (f LogFields) WithRunID(runID string) LogFields {
	f[FieldRunID] = runID
	return f
}

// WithYearMonth takes anything with a YYYY-MM String form.
func (f LogFields) WithYearMonth(ym interface{ String() string }) LogFields {
	f[FieldYearMonth] = ym.String()
	return f
}

func (f LogFields) WithAccount(name string) LogFields {
	f[FieldAccount] = name
	return f
}

// WithError adds error field, skipping nil errors
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
