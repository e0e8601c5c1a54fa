package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gwillem/jointpanel/pkg/link"
	"github.com/gwillem/jointpanel/pkg/robot"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type SetupCommand struct{}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Joint Panel Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━"))
	fmt.Println()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ports, err := link.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No available serial ports found.")
		fmt.Println("Make sure the motor controller is connected.")
		os.Exit(1)
	}

	options := make([]huh.Option[string], 0, len(ports))
	for _, p := range ports {
		options = append(options, huh.NewOption(p, p))
	}
	port := cfg.Port
	if port == "" {
		port = ports[0]
	}

	jointOptions := make([]huh.Option[int], 0, robot.MaxJoints)
	for n := 1; n <= robot.MaxJoints; n++ {
		jointOptions = append(jointOptions, huh.NewOption(strconv.Itoa(n), n))
	}
	joints := cfg.Joints
	baud := strconv.Itoa(cfg.Baud)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Serial port").
				Description("The port the motor controller is connected to").
				Options(options...).
				Value(&port),
			huh.NewSelect[int]().
				Title("Joints").
				Description("Number of motors wired to the controller").
				Options(jointOptions...).
				Value(&joints),
			huh.NewInput().
				Title("Baud rate").
				Value(&baud).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return errors.New("baud rate must be a positive number")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}

	cfg.Port = port
	cfg.Joints = joints
	cfg.Baud, _ = strconv.Atoi(baud)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.SaveTo(opts.Config); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", opts.Config)
	fmt.Println()
	fmt.Println("Open the panel with: " + headerStyle.Render("jointpanel panel"))
	return nil
}
