package models

// DockerImage is one local container image.
type DockerImage struct {
	ID         string `json:"id"`
	Repository string `json:"repository"`
	Tag        string `json:"tag"`
	Size       uint64 `json:"size"`
	Created    string `json:"created"`
	InUse      bool   `json:"in_use"`
}

// DockerContainer is one container, running or stopped.
type DockerContainer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Image   string `json:"image"`
	Status  string `json:"status"`
	Created string `json:"created"`
	Size    uint64 `json:"size"`
}

// DockerVolume is one named volume.
type DockerVolume struct {
	Name   string `json:"name"`
	Driver string `json:"driver"`
	Size   uint64 `json:"size"`
	InUse  bool   `json:"in_use"`
}

// ContainerInventory is the full container-engine footprint.
// Replaced wholesale on every refresh.
type ContainerInventory struct {
	Images         []DockerImage     `json:"images"`
	Containers     []DockerContainer `json:"containers"`
	Volumes        []DockerVolume    `json:"volumes"`
	BuildCacheSize uint64            `json:"build_cache_size"`
}

// UnusedBytes returns the bytes held by build cache plus images and
// volumes that nothing references.
func (inv ContainerInventory) UnusedBytes() uint64 {
	total := inv.BuildCacheSize
	for _, img := range inv.Images {
		if !img.InUse {
			total += img.Size
		}
	}
	for _, v := range inv.Volumes {
		if !v.InUse {
			total += v.Size
		}
	}
	return total
}
