package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder for embedded images
	_ "image/png"  // Register PNG decoder for embedded images
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

// GLTFLoader loads glTF/GLB files into a single Mesh. glTF's conventions
// already match the renderer's (right-handed, +Y up, counter-clockwise
// front faces, UV origin top-left), so nothing is flipped. Node transforms
// are ignored.
type GLTFLoader struct {
	// Options
	CalculateNormals bool
	SmoothNormals    bool

	log *zap.Logger
}

// Option configures a GLTFLoader.
type Option func(*GLTFLoader)

// WithLogger sets the loader's logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(l *GLTFLoader) {
		l.log = log
	}
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader(opts ...Option) *GLTFLoader {
	l := &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
		log:              zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadGLB loads a binary glTF (.glb) file.
func LoadGLB(path string, opts ...Option) (*Mesh, error) {
	mesh, _, err := NewGLTFLoader(opts...).Load(path)
	return mesh, err
}

// Load reads every triangle primitive of every mesh in the document and
// returns them merged, plus the base color image of the first material that
// has one. The image is nil when none is found.
func (l *GLTFLoader) Load(path string) (*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if l.CalculateNormals && !mesh.hasNormals() {
		mesh.CalculateSmoothNormals()
	}
	if err := mesh.Validate(); err != nil {
		return nil, nil, err
	}
	mesh.CalculateBounds()

	img := l.baseColorImage(doc, filepath.Dir(path))

	l.log.Debug("loaded gltf",
		zap.String("path", path),
		zap.Int("meshes", len(doc.Meshes)),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Bool("texture", img != nil))

	return mesh, img, nil
}

// processMesh appends a glTF mesh's triangle primitives to mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for i, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			l.log.Debug("skipping non-triangle primitive",
				zap.String("mesh", m.Name),
				zap.Int("primitive", i))
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs [][2]float32
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		// Base vertex index for this primitive
		base := int32(mesh.VertexCount())

		for v, p := range positions {
			mesh.Positions = append(mesh.Positions, float64(p[0]), float64(p[1]), float64(p[2]))
			if v < len(normals) {
				n := normals[v]
				mesh.Normals = append(mesh.Normals, float64(n[0]), float64(n[1]), float64(n[2]))
			} else {
				mesh.Normals = append(mesh.Normals, 0, 0, 0)
			}
			if v < len(uvs) {
				mesh.TexCoords = append(mesh.TexCoords, float64(uvs[v][0]), float64(uvs[v][1]))
			} else {
				mesh.TexCoords = append(mesh.TexCoords, 0, 0)
			}
		}

		if prim.Indices != nil {
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for t := 0; t+2 < len(indices); t += 3 {
				mesh.AddTriangle(base+int32(indices[t]), base+int32(indices[t+1]), base+int32(indices[t+2]))
			}
		} else {
			// No indices, assume sequential triangles
			for t := int32(0); int(t)+2 < len(positions); t += 3 {
				mesh.AddTriangle(base+t, base+t+1, base+t+2)
			}
		}
	}

	return nil
}

// baseColorImage decodes the base color texture of the first material that
// has one, falling back to the first image in the document. Decode failures
// are logged and yield nil.
func (l *GLTFLoader) baseColorImage(doc *gltf.Document, dir string) image.Image {
	source := -1
	for _, mat := range doc.Materials {
		pbr := mat.PBRMetallicRoughness
		if pbr == nil || pbr.BaseColorTexture == nil {
			continue
		}
		idx := pbr.BaseColorTexture.Index
		if idx < len(doc.Textures) && doc.Textures[idx].Source != nil {
			source = *doc.Textures[idx].Source
			break
		}
	}
	if source < 0 && len(doc.Images) > 0 {
		source = 0
	}
	if source < 0 || source >= len(doc.Images) {
		return nil
	}

	data, err := readImageData(doc, doc.Images[source], dir)
	if err != nil {
		l.log.Warn("failed to read gltf image", zap.Int("image", source), zap.Error(err))
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		l.log.Warn("failed to decode gltf image", zap.Int("image", source), zap.Error(err))
		return nil
	}
	return img
}

// readImageData returns the encoded bytes of a buffer-view or external image.
func readImageData(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		return modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
	case img.URI != "" && !img.IsEmbeddedResource():
		return os.ReadFile(filepath.Join(dir, img.URI))
	case img.URI != "":
		return img.MarshalData()
	}
	return nil, fmt.Errorf("image has no data")
}
