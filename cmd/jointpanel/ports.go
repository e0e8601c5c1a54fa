package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/jointpanel/pkg/link"
)

type PortsCommand struct {
	Details bool `short:"d" long:"details" description:"Show USB vendor/product details"`
}

func (c *PortsCommand) Execute(args []string) error {
	if !c.Details {
		ports, err := link.ListPorts()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Println("No available serial ports found.")
			return nil
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return nil
	}

	infos, err := link.ListPortDetails()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No available serial ports found.")
		return nil
	}

	fmt.Println(renderPortTable(infos))
	return nil
}

func renderPortTable(infos []link.PortInfo) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		usb := "-"
		if info.IsUSB {
			usb = fmt.Sprintf("%s:%s", info.VID, info.PID)
		}
		rows = append(rows, []string{info.Name, usb, info.Serial, info.Product})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(statusStyle).
		Headers("Port", "USB ID", "Serial", "Product").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}
