package cli

import (
	"fmt"

	"github.com/diillson/sales-report-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
   _____       _             _____                       _   
  / ____|     | |           |  __ \                     | |  
 | (___   __ _| | ___  ___  | |__) |___ _ __   ___  _ __| |_ 
  \___ \ / _' | |/ _ \/ __| |  _  // _ \ '_ \ / _ \| '__| __|
  ____) | (_| | |  __/\__ \ | | \ \  __/ |_) | (_) | |  | |_ 
 |_____/ \__,_|_|\___||___/ |_|  \_\___| .__/ \___/|_|   \__|
                                       | |                   
                                       |_|                   
`
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(green(banner))
	fmt.Println(blue(fmt.Sprintf("Sales Report CLI (v%s)", version.FormatVersion())))
}
