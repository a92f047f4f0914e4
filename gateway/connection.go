package gateway

import "fmt"

const (
	ProfileFirst  = "first"
	ProfileSecond = "second"
)

// ConnectionProfile supplies the base URLs of one gateway environment.
// Card tokenization lives on its own host, with separate live and test variants.
type ConnectionProfile struct {
	Name             string
	BaseUrl          string
	CardTokenUrl     string
	CardTokenTestUrl string
}

var profiles = map[string]ConnectionProfile{
	ProfileFirst: {
		Name:             ProfileFirst,
		BaseUrl:          "https://partner.rficb.ru/",
		CardTokenUrl:     "https://secure.rficb.ru/cardtoken/",
		CardTokenTestUrl: "https://test.rficb.ru/cardtoken/",
	},
	ProfileSecond: {
		Name:             ProfileSecond,
		BaseUrl:          "https://partner.rficb.ru/",
		CardTokenUrl:     "https://secure.rfibank.ru/cardtoken/",
		CardTokenTestUrl: "https://test.rfibank.ru/cardtoken/",
	},
}

// DefaultProfile is the profile used when none is configured.
func DefaultProfile() ConnectionProfile {
	return profiles[ProfileSecond]
}

// ProfileByName returns a named profile; an empty name selects the default.
func ProfileByName(name string) (ConnectionProfile, error) {
	if name == "" {
		return DefaultProfile(), nil
	}
	profile, ok := profiles[name]
	if !ok {
		return ConnectionProfile{}, fmt.Errorf("unknown connection profile %q", name)
	}
	return profile, nil
}
