package report

import "fmt"

// Tier is a service level gating report depth.
type Tier string

const (
	TierFree     Tier = "free"
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// StandardModules are the analysis module identifiers the backend recognizes.
var StandardModules = []string{
	"mod_bmc", "mod_market", "mod_comp", "mod_finance", "mod_tech",
	"mod_reg", "mod_gtm", "mod_risk", "mod_roadmap", "mod_funding",
}

// PitchDeckModule is the extra module available on top of the standard set.
const PitchDeckModule = "investor_pitch_deck"

// ParseTier validates a tier string.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierFree, TierBasic, TierStandard, TierPremium:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// Paid reports whether the tier requires an upgrade purchase.
func (t Tier) Paid() bool {
	return t == TierBasic || t == TierStandard || t == TierPremium
}

// KnownModule reports whether id names a recognized analysis module.
func KnownModule(id string) bool {
	if id == PitchDeckModule {
		return true
	}
	for _, m := range StandardModules {
		if m == id {
			return true
		}
	}
	return false
}
