package conversation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTakeResetsToIdle(t *testing.T) {
	m := NewManager()

	m.Set(1, State{Kind: AwaitingGroupName})

	state := m.Take(1)
	assert.Equal(t, AwaitingGroupName, state.Kind)

	// Consumed: the second take sees Idle.
	assert.Equal(t, Idle, m.Take(1).Kind)
}

func TestStatesAreIsolatedPerChat(t *testing.T) {
	m := NewManager()

	m.Set(1, State{Kind: AwaitingGroupName})
	m.Set(2, State{Kind: AwaitingWalletAdd, Group: "Whales"})

	one := m.Take(1)
	assert.Equal(t, AwaitingGroupName, one.Kind)

	two := m.Take(2)
	assert.Equal(t, AwaitingWalletAdd, two.Kind)
	assert.Equal(t, "Whales", two.Group)
}

func TestUnknownChatIsIdle(t *testing.T) {
	m := NewManager()
	assert.Equal(t, Idle, m.Take(42).Kind)
}

func TestReset(t *testing.T) {
	m := NewManager()
	m.Set(1, State{Kind: AwaitingTagEdit, Address: "abc"})
	m.Reset(1)
	assert.Equal(t, Idle, m.Take(1).Kind)
}

// Two goroutines racing on the same chat must consume the flow exactly once.
func TestTakeConsumesExactlyOnce(t *testing.T) {
	m := NewManager()
	m.Set(1, State{Kind: AwaitingGroupName})

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		consumed int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.Take(1).Kind == AwaitingGroupName {
				mu.Lock()
				consumed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, consumed)
}
