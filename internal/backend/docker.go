package backend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/models"
)

const jsonFormat = "{{json .}}"

type dockerImageLine struct {
	ID         string `json:"ID"`
	Repository string `json:"Repository"`
	Tag        string `json:"Tag"`
	Size       string `json:"Size"`
	CreatedAt  string `json:"CreatedAt"`
}

type dockerContainerLine struct {
	ID        string `json:"ID"`
	Names     string `json:"Names"`
	Image     string `json:"Image"`
	Status    string `json:"Status"`
	CreatedAt string `json:"CreatedAt"`
	Size      string `json:"Size"`
}

type dockerDiskUsage struct {
	Volumes []struct {
		Name   string `json:"Name"`
		Driver string `json:"Driver"`
		Links  string `json:"Links"`
		Size   string `json:"Size"`
	} `json:"Volumes"`
	BuildCache []struct {
		Size string `json:"Size"`
	} `json:"BuildCache"`
}

// DockerInfo lists images, containers, volumes and build cache through
// the docker CLI.
func (b *Backend) DockerInfo(ctx context.Context) (*models.ContainerInventory, error) {
	const op = "get_docker_info"

	if _, err := b.runner.Run(ctx, "docker", "info", "--format", "{{.ServerVersion}}"); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, gateway.Errorf(op, "Docker is not installed")
		}
		if ctx.Err() != nil {
			return nil, gateway.Wrap(op, ctx.Err())
		}
		return nil, gateway.Errorf(op, "Docker is not running")
	}

	inv := &models.ContainerInventory{
		Images:     []models.DockerImage{},
		Containers: []models.DockerContainer{},
		Volumes:    []models.DockerVolume{},
	}

	out, err := b.runner.Run(ctx, "docker", "ps", "-a", "--size", "--format", jsonFormat)
	if err != nil {
		return nil, gateway.Wrap(op, err)
	}
	err = eachJSONLine(out, func(c dockerContainerLine) {
		inv.Containers = append(inv.Containers, models.DockerContainer{
			ID:      c.ID,
			Name:    c.Names,
			Image:   c.Image,
			Status:  c.Status,
			Created: c.CreatedAt,
			Size:    parseDockerSize(c.Size),
		})
	})
	if err != nil {
		return nil, gateway.Wrap(op, err)
	}

	out, err = b.runner.Run(ctx, "docker", "images", "--format", jsonFormat)
	if err != nil {
		return nil, gateway.Wrap(op, err)
	}
	err = eachJSONLine(out, func(i dockerImageLine) {
		inv.Images = append(inv.Images, models.DockerImage{
			ID:         i.ID,
			Repository: i.Repository,
			Tag:        i.Tag,
			Size:       parseDockerSize(i.Size),
			Created:    i.CreatedAt,
			InUse:      imageInUse(i, inv.Containers),
		})
	})
	if err != nil {
		return nil, gateway.Wrap(op, err)
	}

	out, err = b.runner.Run(ctx, "docker", "system", "df", "-v", "--format", jsonFormat)
	if err != nil {
		return nil, gateway.Wrap(op, err)
	}
	var du dockerDiskUsage
	if err := json.Unmarshal(bytes.TrimSpace(out), &du); err != nil {
		return nil, gateway.Wrap(op, err)
	}
	for _, v := range du.Volumes {
		inv.Volumes = append(inv.Volumes, models.DockerVolume{
			Name:   v.Name,
			Driver: v.Driver,
			Size:   parseDockerSize(v.Size),
			InUse:  v.Links != "" && v.Links != "0",
		})
	}
	for _, bc := range du.BuildCache {
		inv.BuildCacheSize += parseDockerSize(bc.Size)
	}

	return inv, nil
}

// CleanDocker is not performed by the local backend.
func (b *Backend) CleanDocker(ctx context.Context, target gateway.DockerTarget) (*models.CleanupResult, error) {
	return nil, gateway.Unsupported("clean_docker")
}

func eachJSONLine[T any](out []byte, fn func(T)) error {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var v T
		if err := json.Unmarshal(line, &v); err != nil {
			return err
		}
		fn(v)
	}
	return scanner.Err()
}

// imageInUse reports whether any container references the image by
// repository:tag, bare repository or short id.
func imageInUse(img dockerImageLine, containers []models.DockerContainer) bool {
	ref := img.Repository + ":" + img.Tag
	for _, c := range containers {
		if c.Image == "" {
			continue
		}
		switch {
		case c.Image == ref,
			img.Tag == "latest" && c.Image == img.Repository,
			img.ID != "" && strings.HasPrefix(img.ID, c.Image),
			img.ID != "" && strings.HasPrefix(c.Image, img.ID):
			return true
		}
	}
	return false
}

// parseDockerSize parses docker's decimal sizes ("1.2GB", "512kB",
// "0B (virtual 1.2GB)"). Unparseable values are 0.
func parseDockerSize(s string) uint64 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n, err := humanize.ParseBytes(fields[0])
	if err != nil {
		return 0
	}
	return n
}
