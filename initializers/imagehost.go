package initializers

import (
	"github.com/JuzzThyne/ERI-backend/catalog"
	"github.com/JuzzThyne/ERI-backend/config"
	"github.com/JuzzThyne/ERI-backend/imagehost"
	"github.com/JuzzThyne/ERI-backend/obs"
)

// ImageHost picks Cloudinary when credentials are configured and the local
// directory otherwise. serveDir is non-empty only for the local host and
// names the directory the router must serve under /uploads.
func ImageHost(cfg config.Config) (up catalog.ImageUploader, serveDir string, err error) {
	if cfg.CloudinaryURL != "" {
		c, err := imagehost.NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			return nil, "", err
		}
		obs.Logger.Info("image_host_selected", "host", "cloudinary", "folder", cfg.CloudinaryFolder)
		return c, "", nil
	}

	l, err := imagehost.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, "", err
	}
	obs.Logger.Info("image_host_selected", "host", "local", "dir", l.Dir(), "base_url", cfg.PublicBaseURL)
	return l, l.Dir(), nil
}
