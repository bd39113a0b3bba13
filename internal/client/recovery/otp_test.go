package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOTP_PasteSixDigits(t *testing.T) {
	var o OTP
	n := o.Paste("123456")

	assert.Equal(t, 6, n)
	assert.Equal(t, [OTPLength]string{"1", "2", "3", "4", "5", "6"}, o.Cells())
	assert.Equal(t, 5, o.Focus())
	assert.True(t, o.Complete())
	assert.Equal(t, "123456", o.Code())
}

func TestOTP_PasteTruncatesToSix(t *testing.T) {
	var o OTP
	n := o.Paste("987654321")

	assert.Equal(t, 6, n)
	assert.Equal(t, "987654", o.Code())
	assert.Equal(t, 5, o.Focus())
}

func TestOTP_PasteStripsNonDigits(t *testing.T) {
	var o OTP
	n := o.Paste(" 12-3 a4 ")

	assert.Equal(t, 4, n)
	assert.Equal(t, [OTPLength]string{"1", "2", "3", "4", "", ""}, o.Cells())
	assert.Equal(t, 4, o.Focus())
	assert.False(t, o.Complete())
}

func TestOTP_PasteWithoutDigitsChangesNothing(t *testing.T) {
	var o OTP
	o.Input(0, "7")
	assert.Equal(t, 0, o.Paste("abc"))
	assert.Equal(t, "7", o.Cells()[0])
	assert.Equal(t, 1, o.Focus())
}

func TestOTP_InputRejectsNonDigits(t *testing.T) {
	var o OTP
	o.Input(2, "5")
	for _, bad := range []string{"a", " ", "12", "-", "٣"} {
		assert.False(t, o.Input(2, bad), "input %q", bad)
		assert.Equal(t, "5", o.Cells()[2], "cell changed by %q", bad)
	}
	assert.False(t, o.Input(6, "1"))
	assert.False(t, o.Input(-1, "1"))
}

func TestOTP_TypingAdvancesFocus(t *testing.T) {
	var o OTP
	for i, d := range []string{"1", "2", "3", "4", "5", "6"} {
		assert.Equal(t, i, o.Focus())
		assert.True(t, o.Input(o.Focus(), d))
	}
	assert.Equal(t, 5, o.Focus(), "focus stays on the last cell")
	assert.True(t, o.Complete())
}

func TestOTP_Backspace(t *testing.T) {
	var o OTP
	o.Paste("12")
	assert.Equal(t, 2, o.Focus())

	o.Backspace(2)
	assert.Equal(t, 1, o.Focus(), "empty cell moves focus back")

	o.Backspace(1)
	assert.Equal(t, "", o.Cells()[1])
	assert.Equal(t, 1, o.Focus(), "filled cell is cleared in place")

	o.Backspace(0)
	o.Backspace(0)
	assert.Equal(t, 0, o.Focus())
	assert.Equal(t, "", o.Code())
}

func TestOTP_Reset(t *testing.T) {
	var o OTP
	o.Paste("123456")
	o.Reset()
	assert.Equal(t, OTP{}, o)
}
