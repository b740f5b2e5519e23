package parser

import (
	"fmt"
	"io"
)

// TextParser handles plain text files.
type TextParser struct{}

func (p *TextParser) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return string(data), nil
}
