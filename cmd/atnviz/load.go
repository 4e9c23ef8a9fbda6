package main

import (
	"encoding/binary"
	"fmt"
	"io/ioutil"

	"github.com/nihei9/atnpredict/atn"
)

// loadATN reads an ATN image from path and deserializes it. The image on
// disk is the wire format's flat array of 16-bit unsigned code units,
// stored big-endian two bytes at a time; loadATN widens each unit to an
// int before handing it to the deserializer, which is what it expects.
func loadATN(path string) (*atn.ATN, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read ATN image %s: %w", path, err)
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("malformed ATN image %s: odd byte length %v", path, len(raw))
	}

	data := make([]int, len(raw)/2)
	for i := range data {
		data[i] = int(binary.BigEndian.Uint16(raw[i*2 : i*2+2]))
	}

	a, err := atn.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("cannot deserialize ATN image %s: %w", path, err)
	}
	return a, nil
}

// readInput reads the source file as a rune slice, for either the char
// stream the lexer consumes or the text a token's row/col is resolved
// against.
func readInput(path string) ([]rune, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file %s: %w", path, err)
	}
	return []rune(string(raw)), nil
}

// rowCol resolves the 0-based row and column of the character at index i
// within src, counting newlines the way the teacher's driver package
// does for token positions.
func rowCol(src []rune, i int) (row, col int) {
	if i > len(src) {
		i = len(src)
	}
	for _, r := range src[:i] {
		if r == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return row, col
}
