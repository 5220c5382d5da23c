package iocli

import "io"

//go:generate moq -out io_mock.go . IO

// IO абстракция терминала для команд CLI: вывод отчётов и интерактивный ввод учётных данных.
type IO interface {
	io.Writer
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}
