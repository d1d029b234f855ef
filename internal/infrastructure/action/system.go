package action

import (
	"fmt"

	"github.com/doeshing/aimy-go/internal/domain"
)

// macOS virtual key codes for the hardware setting keys, sent via osascript.
// Values follow the system events keyboard map and are fixed contract.
var darwinKeyCodes = map[domain.SystemSetting]map[domain.SettingAction]int{
	domain.SettingBrightness: {
		domain.SettingIncrease: 144,
		domain.SettingDecrease: 145,
	},
	domain.SettingVolume: {
		domain.SettingIncrease: 126,
		domain.SettingDecrease: 125,
		domain.SettingMute:     74,
	},
}

// linux amixer fallbacks for volume; brightness has no portable command.
var linuxVolumeCommands = map[domain.SettingAction]string{
	domain.SettingIncrease: "amixer -q set Master 10%+",
	domain.SettingDecrease: "amixer -q set Master 10%-",
	domain.SettingMute:     "amixer -q set Master toggle",
}

// settingCommand resolves the shell command that applies a setting change on
// the given platform, or an error when the platform cannot express it.
func settingCommand(goos string, setting domain.SystemSetting, act domain.SettingAction) (string, error) {
	switch goos {
	case "darwin":
		code, ok := darwinKeyCodes[setting][act]
		if !ok {
			return "", fmt.Errorf("unsupported adjustment %s/%s", setting, act)
		}
		return fmt.Sprintf("osascript -e 'tell application \"System Events\" to key code %d'", code), nil

	case "linux":
		if setting == domain.SettingVolume {
			if cmd, ok := linuxVolumeCommands[act]; ok {
				return cmd, nil
			}
		}
		return "", fmt.Errorf("no %s control available on linux", setting)

	default:
		return "", fmt.Errorf("system control not supported on %s", goos)
	}
}

func settingMessage(setting domain.SystemSetting, act domain.SettingAction) string {
	switch act {
	case domain.SettingMute:
		return fmt.Sprintf("Muted the %s", setting)
	case domain.SettingDecrease:
		return fmt.Sprintf("Decreased the %s", setting)
	default:
		return fmt.Sprintf("Increased the %s", setting)
	}
}
