package storage

// Keys of the documents the application persists.
const (
	DeckKey         = "flashcards_deck"
	HistoryKey      = "flashcards_history"
	SessionStartKey = "flashcards_session_start"
)

// KV is a synchronous key-value store of whole string documents.
// Get reports ok=false for a missing key; that is not an error.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Memory is a map-backed KV. It is not safe for concurrent use.
type Memory struct {
	data map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	delete(m.data, key)
	return nil
}
