package assets

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// AssetInfo holds information about an asset file.
type AssetInfo struct {
	Name string
	Path string
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
}

func IsImageFile(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// ListImages scans dir recursively for image files, sorted by path.
func ListImages(dir string) ([]AssetInfo, error) {
	var assets []AssetInfo
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if IsImageFile(info.Name()) {
			assets = append(assets, AssetInfo{
				Name: info.Name(),
				Path: path,
			})
		}
		return nil
	})
	sort.Slice(assets, func(i, j int) bool { return assets[i].Path < assets[j].Path })
	return assets, err
}
