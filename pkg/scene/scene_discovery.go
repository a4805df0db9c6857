package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/tinytracer/pkg/geometry"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, also the -scene flag value
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to scene file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

const builtInGroup = "Built-in Scenes"

type builtInScene struct {
	info   SceneInfo
	create func(...geometry.CameraConfig) *Scene
}

var builtInScenes = []builtInScene{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Hollow glass shells, matte spheres and two emissive spheres"}, NewDefaultScene},
	{SceneInfo{ID: "ground", Name: "Ground", Description: "Single matte ground sphere under the sky"}, NewGroundScene},
	{SceneInfo{ID: "lit-sphere", Name: "Lit Sphere", Description: "Matte sphere lit by one emissive sphere"}, NewLitSphereScene},
	{SceneInfo{ID: "materials", Name: "Materials", Description: "One sphere per material with depth of field"}, NewMaterialsScene},
	{SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "10x10 grid of rainbow-colored metallic spheres"}, NewSphereGridScene},
}

// Names returns the IDs of the built-in scenes
func Names() []string {
	names := make([]string, len(builtInScenes))
	for i, s := range builtInScenes {
		names[i] = s.info.ID
	}
	return names
}

// Create builds the named built-in scene. Non-zero fields of cameraOverrides
// replace the scene's default camera settings.
func Create(name string, cameraOverrides geometry.CameraConfig) (*Scene, error) {
	for _, s := range builtInScenes {
		if s.info.ID == name {
			return s.create(cameraOverrides), nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
}

// ListBuiltInScenes returns metadata for every built-in scene
func ListBuiltInScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtInScenes))
	for i, s := range builtInScenes {
		infos[i] = s.info
		infos[i].Group = builtInGroup
		infos[i].Type = "builtin"
	}
	return infos
}

// ListJSONScenes scans dir for .json scene files. A missing directory yields an empty list.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata reads the optional name, description and group of a
// JSON scene file. Missing fields fall back to values derived from the filename.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Files",
		Type:     "json",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return sceneInfo, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	if name := strings.TrimSpace(header.Name); name != "" {
		sceneInfo.Name = name
	}
	sceneInfo.Description = strings.TrimSpace(header.Description)
	if group := strings.TrimSpace(header.Group); group != "" {
		sceneInfo.Group = group
	}

	return sceneInfo, nil
}

// ListAllScenes returns built-in scenes and the scene files in dir, grouped by
// category with the built-in group first and the rest alphabetical
func ListAllScenes(dir string) ([]SceneGroup, error) {
	fileScenes, err := ListJSONScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(ListBuiltInScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	groups := []SceneGroup{{Name: builtInGroup, Scenes: groupMap[builtInGroup]}}
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return groups, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-shells" -> "Glass Shells"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
