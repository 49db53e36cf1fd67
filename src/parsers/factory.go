package parsers

import (
	"fmt"

	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/parsers/lazada"
	"github.com/username/salesfolio/backend/src/parsers/shopee"
	"github.com/username/salesfolio/backend/src/parsers/tiktok"
)

func GetClassifier(platform models.Platform) (RowClassifier, error) {
	switch platform {
	case models.PlatformShopee:
		return shopee.NewClassifier(), nil
	case models.PlatformTikTok:
		return tiktok.NewClassifier(), nil
	case models.PlatformLazada:
		return lazada.NewClassifier(), nil
	default:
		return nil, fmt.Errorf("no classifier available for platform: %s", platform)
	}
}

// LabelRegistries returns the breakdown label registry of every platform.
func LabelRegistries() map[models.Platform]models.LabelRegistry {
	out := make(map[models.Platform]models.LabelRegistry, len(models.Platforms))
	for _, p := range models.Platforms {
		c, err := GetClassifier(p)
		if err != nil {
			continue
		}
		out[p] = c.Labels()
	}
	return out
}
