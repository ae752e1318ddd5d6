package config

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
)

func ConnectCloudinary(cfg Cloudinary) (*cloudinary.Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return cld, nil
}
