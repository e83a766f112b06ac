package xlsx

import (
	"strconv"
)

// lettersInAlphabet is the radix of spreadsheet column letters.
const lettersInAlphabet = 26

// maxColumnLetters is the letter count of ColumnName(math.MaxInt).
const maxColumnLetters = 14

// ColumnName converts a 1-based column index to its letter form:
// 1 → A, 26 → Z, 27 → AA, 703 → AAA. It returns "" for col < 1.
func ColumnName(col int) string {
	var buf [maxColumnLetters]byte
	i := len(buf)
	for col > 0 {
		col--
		i--
		buf[i] = byte('A' + col%lettersInAlphabet)
		col /= lettersInAlphabet
	}
	return string(buf[i:])
}

// CellRef returns the A1-style reference of a 1-based row and column.
func CellRef(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row)
}

// Dimension returns the range spanning rows×cols cells from A1.
func Dimension(rows, cols int) string {
	return "A1:" + CellRef(rows, cols)
}
