package recovery

import "strings"

// OTPLength is the number of cells of a one-time code.
const OTPLength = 6

// OTP models the six single-digit input cells and which cell has focus.
// The zero value is six empty cells with focus on the first.
type OTP struct {
	cells [OTPLength]string
	focus int
}

// Input sets cell i to value. Only "" or a single ASCII digit is accepted;
// anything else leaves the cell unchanged and returns false. A digit moves
// focus to the next cell.
func (o *OTP) Input(i int, value string) bool {
	if i < 0 || i >= OTPLength {
		return false
	}
	if len(value) > 1 || (value != "" && !isDigit(value[0])) {
		return false
	}
	o.cells[i] = value
	o.focus = i
	if value != "" && i < OTPLength-1 {
		o.focus = i + 1
	}
	return true
}

// Backspace clears cell i, or moves focus back when it is already empty.
func (o *OTP) Backspace(i int) {
	if i < 0 || i >= OTPLength {
		return
	}
	if o.cells[i] != "" {
		o.cells[i] = ""
		o.focus = i
		return
	}
	if i > 0 {
		o.focus = i - 1
	}
}

// Paste keeps the digits of text, truncates them to OTPLength and writes
// them into the cells from the first one. Focus lands on the first empty
// cell, or the last cell when all are filled. It returns how many digits
// were written.
func (o *OTP) Paste(text string) int {
	var digits []byte
	for i := 0; i < len(text) && len(digits) < OTPLength; i++ {
		if isDigit(text[i]) {
			digits = append(digits, text[i])
		}
	}
	for i, d := range digits {
		o.cells[i] = string(d)
	}
	o.focus = OTPLength - 1
	for i, c := range o.cells {
		if c == "" {
			o.focus = i
			break
		}
	}
	return len(digits)
}

func (o *OTP) Focus() int { return o.focus }

func (o *OTP) Cells() [OTPLength]string { return o.cells }

// Complete reports whether every cell holds a digit.
func (o *OTP) Complete() bool {
	for _, c := range o.cells {
		if c == "" {
			return false
		}
	}
	return true
}

// Code joins the cells.
func (o *OTP) Code() string {
	return strings.Join(o.cells[:], "")
}

func (o *OTP) Reset() {
	*o = OTP{}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
