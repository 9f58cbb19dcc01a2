package formatter

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct {
	out io.Writer
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{out: os.Stdout}
}

func (f *JSONFormatter) Format(report *Report) error {
	data, err := sonic.ConfigDefault.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if _, err := f.out.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
