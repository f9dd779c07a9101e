package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

var CLI struct {
	Config string `help:"Путь к файлу конфигурации." type:"path" default:"config.toml"`

	Serve ServeCmd `cmd:"" help:"Запустить HTTP сервер." default:"1"`
	Sweep SweepCmd `cmd:"" help:"Перевести просроченные pending бронирования в expired и выйти."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("court-booking-service"),
		kong.Description("Сервис доступности и бронирования кортов"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&Globals{ConfigPath: CLI.Config}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Globals общие параметры всех команд
type Globals struct {
	ConfigPath string
}
