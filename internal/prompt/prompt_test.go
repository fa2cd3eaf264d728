package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/prompt"
)

// script joins answers with newlines the way a user would type them.
func script(answers ...string) *strings.Reader {
	return strings.NewReader(strings.Join(answers, "\n") + "\n")
}

func TestCollectClient(t *testing.T) {
	t.Run("collects a full client", func(t *testing.T) {
		var out bytes.Buffer
		p := prompt.New(script("Jane Smith", "Smith Ltd", "2 Side Road", "Leeds", "ls1 1aa"), &out)

		client, err := p.CollectClient()
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", client.Name)
		assert.Equal(t, "Smith Ltd", client.Company)
		assert.Equal(t, "LS1 1AA", client.Postcode)
	})

	t.Run("requires a name when both name and company are skipped", func(t *testing.T) {
		var out bytes.Buffer
		p := prompt.New(script("", "", "Jane Smith", "2 Side Road", "Leeds", "LS1 1AA"), &out)

		client, err := p.CollectClient()
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", client.Name)
		assert.Contains(t, out.String(), "Either client name or company name is required")
	})

	t.Run("re-prompts on an invalid postcode", func(t *testing.T) {
		var out bytes.Buffer
		p := prompt.New(script("Jane", "", "2 Side Road", "Leeds", "nope", "LS1 1AA"), &out)

		client, err := p.CollectClient()
		require.NoError(t, err)
		assert.Equal(t, "LS1 1AA", client.Postcode)
		assert.Contains(t, out.String(), "valid UK postcode")
	})

	t.Run("returns ErrInputClosed when input ends early", func(t *testing.T) {
		var out bytes.Buffer
		p := prompt.New(strings.NewReader("Jane\n"), &out)

		_, err := p.CollectClient()
		require.ErrorIs(t, err, prompt.ErrInputClosed)
	})
}

func TestCollectLineItems(t *testing.T) {
	t.Run("collects items until a blank description", func(t *testing.T) {
		var out bytes.Buffer
		p := prompt.New(script(
			"Development", "100.00", "5",
			"Support", "25.00", "",
			"",
		), &out)

		items, err := p.CollectLineItems()
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, 5, items[0].Quantity)
		assert.Equal(t, "500.00", items[0].LineTotal().StringFixed(2))
		assert.Equal(t, 1, items[1].Quantity)
	})

	t.Run("refuses to finish with zero items", func(t *testing.T) {
		var out bytes.Buffer
		p := prompt.New(script("", "Hosting", "50", "1", ""), &out)

		items, err := p.CollectLineItems()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Contains(t, out.String(), "At least one line item is required")
	})

	t.Run("re-prompts on a non-positive amount", func(t *testing.T) {
		var out bytes.Buffer
		p := prompt.New(script("Hosting", "-5", "abc", "50.00", "1", ""), &out)

		items, err := p.CollectLineItems()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "50.00", items[0].Amount.StringFixed(2))
	})
}

func TestYesNoPrompts(t *testing.T) {
	t.Run("due on receipt defaults to yes", func(t *testing.T) {
		var out bytes.Buffer
		due, err := prompt.New(script(""), &out).DueOnReceipt()
		require.NoError(t, err)
		assert.True(t, due)
	})

	t.Run("explicit no is respected", func(t *testing.T) {
		var out bytes.Buffer
		due, err := prompt.New(script("n"), &out).DueOnReceipt()
		require.NoError(t, err)
		assert.False(t, due)
	})

	t.Run("save contact defaults to no", func(t *testing.T) {
		var out bytes.Buffer
		save, err := prompt.New(script(""), &out).ConfirmSaveContact()
		require.NoError(t, err)
		assert.False(t, save)
	})
}
