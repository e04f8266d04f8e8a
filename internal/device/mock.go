package device

// Mock is a test double for Device.
type Mock struct {
	loadCalls   []string
	loadErr     error
	playCalls   int
	pauseCalls  int
	seekCalls   []float64
	volumeCalls []float64

	events chan Event
	closed bool
}

// NewMock creates a new mock device for testing.
func NewMock() *Mock {
	return &Mock{events: make(chan Event, eventBufSize)}
}

func (m *Mock) Load(locator string) error {
	m.loadCalls = append(m.loadCalls, locator)
	return m.loadErr
}

func (m *Mock) Play()  { m.playCalls++ }
func (m *Mock) Pause() { m.pauseCalls++ }

func (m *Mock) Seek(seconds float64) {
	m.seekCalls = append(m.seekCalls, seconds)
}

func (m *Mock) SetVolume(v float64) {
	m.volumeCalls = append(m.volumeCalls, v)
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetLoadError(err error) { m.loadErr = err }

func (m *Mock) LoadCalls() []string     { return m.loadCalls }
func (m *Mock) PlayCalls() int          { return m.playCalls }
func (m *Mock) PauseCalls() int         { return m.pauseCalls }
func (m *Mock) SeekCalls() []float64    { return m.seekCalls }
func (m *Mock) VolumeCalls() []float64  { return m.volumeCalls }
func (m *Mock) Closed() bool            { return m.closed }

// Emit pushes an event as if the device had reported it.
func (m *Mock) Emit(e Event) {
	select {
	case m.events <- e:
	default:
	}
}

// Verify Mock implements Device at compile time.
var _ Device = (*Mock)(nil)
