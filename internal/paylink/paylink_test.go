package paylink

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/divvy/internal/money"
)

func TestFintoc(t *testing.T) {
	tests := []struct {
		name string
		owed money.Money
		want string
	}{
		{name: "zero-decimal currency", owed: money.New(12345, "CLP"), want: "https://fintoc.me/alice/12345"},
		{name: "rounds half up", owed: money.New(1050, "USD"), want: "https://fintoc.me/alice/11"},
		{name: "rounds down", owed: money.New(1049, "USD"), want: "https://fintoc.me/alice/10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fintoc{Collector: "alice"}.Link("Bob", tt.owed, "Dinner")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := Fintoc{Collector: "alice"}.Link("Bob", money.New(0, "CLP"), "Dinner")
	require.ErrorIs(t, err, ErrNothingOwed)

	_, err = Fintoc{}.Link("Bob", money.New(100, "CLP"), "Dinner")
	require.Error(t, err)
}

func TestTemplate(t *testing.T) {
	tmpl := Template{Pattern: "https://pay.example.com/?to=me&from={name}&amt={amount}&cur={currency}&memo={title}"}

	got, err := tmpl.Link("Ana María", money.New(1205, "USD"), "Friday & co")
	require.NoError(t, err)
	require.Equal(t, "https://pay.example.com/?to=me&from=Ana+Mar%C3%ADa&amt=12.05&cur=USD&memo=Friday+%26+co", got)

	got, err = tmpl.Link("Bob", money.New(3500, "JPY"), "Ramen")
	require.NoError(t, err)
	require.Contains(t, got, "amt=3500&")

	_, err = tmpl.Link("Bob", money.New(-1, "USD"), "Ramen")
	require.ErrorIs(t, err, ErrNothingOwed)
}

func TestNew(t *testing.T) {
	require.Nil(t, New("", ""))
	require.Equal(t, Fintoc{Collector: "alice"}, New("", "@alice"))
	require.Equal(t, Template{Pattern: "x/{amount}"}, New("x/{amount}", "alice"))
}
