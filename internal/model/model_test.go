package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohakim/gagyebu/internal/common"
)

func TestAmount_UnmarshalAcceptsBothShapes(t *testing.T) {
	// The backend returns decimals as strings but accepts numbers.
	var fromString Amount
	require.NoError(t, json.Unmarshal([]byte(`"1234.50"`), &fromString))
	assert.InDelta(t, 1234.50, float64(fromString), 0.001)

	var fromNumber Amount
	require.NoError(t, json.Unmarshal([]byte(`1234.5`), &fromNumber))
	assert.InDelta(t, 1234.50, float64(fromNumber), 0.001)

	assert.Error(t, json.Unmarshal([]byte(`"12,00"`), &fromString))
}

func TestDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-07", d.String())

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-07"`, string(data))

	_, err = ParseDate("07/01/2024")
	assert.Error(t, err)
}

func TestAccount_Validate(t *testing.T) {
	day := func(d int) *int { return &d }

	tests := []struct {
		account Account
		name    string
		wantErr bool
	}{
		{name: "valid bank", account: Account{Name: "checking", SourceType: AccountSourceBank}},
		{name: "valid card with billing day", account: Account{Name: "visa", SourceType: AccountSourceCard, BillingDay: day(25)}},
		{name: "missing name", account: Account{SourceType: AccountSourceCash}, wantErr: true},
		{name: "unknown source", account: Account{Name: "x", SourceType: "crypto"}, wantErr: true},
		{name: "billing day too low", account: Account{Name: "visa", SourceType: AccountSourceCard, BillingDay: day(0)}, wantErr: true},
		{name: "billing day too high", account: Account{Name: "visa", SourceType: AccountSourceCard, BillingDay: day(32)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr {
				var vErr *common.ValidationError
				require.ErrorAs(t, err, &vErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJobStatus_Terminal(t *testing.T) {
	assert.False(t, JobStatusPending.Terminal())
	assert.True(t, JobStatusSuccess.Terminal())
	assert.True(t, JobStatusError.Terminal())
}

func TestJobRequest_Validate(t *testing.T) {
	valid := JobRequest{
		About:       AboutCategoryExpense,
		Type:        PeriodMonthly,
		PeriodStart: NewDate(2024, time.March, 1),
		PeriodEnd:   NewDate(2024, time.March, 31),
	}
	assert.NoError(t, valid.Validate())

	sameDay := valid
	sameDay.PeriodStart = sameDay.PeriodEnd
	assert.NoError(t, sameDay.Validate(), "period_start == period_end is allowed")

	inverted := valid
	inverted.PeriodStart = NewDate(2024, time.April, 1)
	var vErr *common.ValidationError
	require.ErrorAs(t, inverted.Validate(), &vErr)
	assert.Equal(t, "period_start", vErr.Field)
}
