package catalogdomain

import (
	"errors"
	"testing"

	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "UPCOMING", want: StatusUpcoming},
		{in: "ongoing", want: StatusOngoing},
		{in: " Finished ", want: StatusFinished},
		{in: "registration_closed", want: StatusRegistrationClosed},
		{in: "CANCELLED", want: StatusCancelled},
		{in: "POSTPONED", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownStatus))
				assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRegistrationStatus(t *testing.T) {
	got, err := ParseRegistrationStatus("coming_soon")
	require.NoError(t, err)
	assert.Equal(t, RegistrationComingSoon, got)

	_, err = ParseRegistrationStatus("WAITLIST")
	assert.ErrorIs(t, err, ErrUnknownRegistrationStatus)
}

func TestValidateStatusPair(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		reg      RegistrationStatus
		coherent bool
	}{
		{name: "upcoming coming soon", status: StatusUpcoming, reg: RegistrationComingSoon, coherent: true},
		{name: "upcoming open", status: StatusUpcoming, reg: RegistrationOpen, coherent: true},
		{name: "upcoming full", status: StatusUpcoming, reg: RegistrationFull},
		{name: "ongoing closed", status: StatusOngoing, reg: RegistrationClosed, coherent: true},
		{name: "ongoing open", status: StatusOngoing, reg: RegistrationOpen},
		{name: "finished closed", status: StatusFinished, reg: RegistrationClosed, coherent: true},
		{name: "finished open", status: StatusFinished, reg: RegistrationOpen},
		{name: "registration closed full", status: StatusRegistrationClosed, reg: RegistrationFull, coherent: true},
		{name: "registration closed closed", status: StatusRegistrationClosed, reg: RegistrationClosed, coherent: true},
		{name: "registration closed open", status: StatusRegistrationClosed, reg: RegistrationOpen},
		{name: "cancelled closed", status: StatusCancelled, reg: RegistrationClosed, coherent: true},
		{name: "cancelled coming soon", status: StatusCancelled, reg: RegistrationComingSoon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateStatusPair(tt.status, tt.reg)
			if tt.coherent {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.reg, got.RegistrationStatus)
			assert.NotEmpty(t, got.Expected)
			assert.NotContains(t, got.Expected, tt.reg)
			assert.Contains(t, got.String(), string(tt.reg))
		})
	}
}

func TestValidateStatusPairDoesNotLeakTable(t *testing.T) {
	got := ValidateStatusPair(StatusUpcoming, RegistrationClosed)
	require.NotNil(t, got)
	got.Expected[0] = RegistrationFull

	assert.Nil(t, ValidateStatusPair(StatusUpcoming, RegistrationComingSoon))
}
