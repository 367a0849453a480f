package cli

import (
	"fmt"

	"github.com/diillson/aws-dx-metrics-report/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
   ____  __  __    ____                       _
  |  _ \ \ \/ /   |  _ \ ___ _ __   ___  _ __| |_
  | | | | \  /    | |_) / _ \ '_ \ / _ \| '__| __|
  | |_| | /  \    |  _ <  __/ |_) | (_) | |  | |_
  |____/ /_/\_\   |_| \_\___| .__/ \___/|_|   \__|
                            |_|
`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("DX Metrics Report CLI (v%s)", version.FormatVersion())))
}
