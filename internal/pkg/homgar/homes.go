package homgar

import (
	"context"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// GetHomes lists the homes registered to the logged-in account.
func (s *service) GetHomes(ctx context.Context) ([]model.Home, error) {
	var homes []model.Home
	if err := s.getJSON(ctx, "/app/member/appHome/list", nil, &homes); err != nil {
		return nil, err
	}
	return homes, nil
}
