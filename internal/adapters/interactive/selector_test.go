package interactive

import (
	"context"
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/domain/config"
)

func testContracts() []*domain.Contract {
	adder := domain.NewContract("/ws/adder/adder.c")
	adder.BytecodePath = "/ws/adder/adder.wasm"
	counter := domain.NewContract("/ws/counter/counter.c")
	return []*domain.Contract{adder, counter}
}

func TestSelectContract(t *testing.T) {
	t.Run("single candidate is returned without prompting", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{ProjectRoot: "/ws", NonInteractive: true})
		contracts := testContracts()[:1]

		got, err := s.SelectContract(context.Background(), contracts, "Pick")
		require.NoError(t, err)
		assert.Equal(t, "adder", got.ID)
	})

	t.Run("empty list fails", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{ProjectRoot: "/ws"})
		_, err := s.SelectContract(context.Background(), nil, "Pick")
		assert.Error(t, err)
	})

	t.Run("non-interactive mode refuses to prompt", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{ProjectRoot: "/ws", NonInteractive: true})
		_, err := s.SelectContract(context.Background(), testContracts(), "Pick")
		assert.ErrorIs(t, err, ErrNonInteractive)
	})

	t.Run("returns the picked contract", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{ProjectRoot: "/ws"})
		var items []string
		s.run = func(prompt *promptui.Select) (int, string, error) {
			items = prompt.Items.([]string)
			return 1, items[1], nil
		}

		got, err := s.SelectContract(context.Background(), testContracts(), "Pick")
		require.NoError(t, err)
		assert.Equal(t, "counter", got.ID)
		require.Len(t, items, 2)
		assert.Contains(t, items[0], "adder/adder.c")
		assert.Contains(t, items[0], "built")
		assert.NotContains(t, items[1], "built")
	})

	t.Run("cancelled prompt", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{ProjectRoot: "/ws"})
		s.run = func(*promptui.Select) (int, string, error) {
			return -1, "", promptui.ErrInterrupt
		}

		_, err := s.SelectContract(context.Background(), testContracts(), "Pick")
		assert.True(t, errors.Is(err, promptui.ErrInterrupt))
	})
}

func TestFuzzySearch(t *testing.T) {
	search := createFuzzySearchFunc([]string{"adder (adder/adder.c)", "counter (counter/counter.c)"})

	assert.True(t, search("", 0))
	assert.True(t, search("ADD", 0))
	assert.False(t, search("add", 1))
	assert.True(t, search("cntr", 1))
}
