package commands

import (
	"github.com/deeptony/flightInsurance/src/config"
	"github.com/spf13/cobra"
)

var (
	_config = config.NewDefaultConfig()
)

//RootCmd is the root command for flightsurety
var RootCmd = &cobra.Command{
	Use:              "flightsurety",
	Short:            "flight status oracle and airline registration consensus",
	TraverseChildren: true,
}
