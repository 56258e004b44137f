package navmesh

import (
	"fmt"

	"gonavcsg/common"
	"gonavcsg/common/rw"
)

// Snapshot format: little-endian, magic + version header, build parameters,
// polygon arena, link arena. The spatial index is rebuilt on load.
const (
	snapshotMagic   = uint32('N')<<24 | uint32('C')<<16 | uint32('S')<<8 | uint32('G')
	snapshotVersion = uint32(1)
)

// Data serializes the mesh for persistence or transfer.
func (nm *Navmesh) Data() []byte {
	w := rw.NewWriter()
	w.WriteUint32(snapshotMagic)
	w.WriteUint32(snapshotVersion)

	cfg := nm.cfg
	w.WriteFloat32s([]float32{
		cfg.AgentRadius, cfg.MaxSlopeDeg, cfg.MaxStepHeight, cfg.MaxClimbHeight,
		cfg.Tolerance, cfg.MinOverlap, cfg.CellSize, cfg.MaxQueryRange,
		cfg.HeuristicScale, cfg.StepUpCost,
	})
	w.WriteInt32(int32(cfg.MaxNodes))

	w.WriteUint32(uint32(len(nm.polys)))
	for _, p := range nm.polys {
		w.WriteUint32(uint32(len(p.Verts)))
		for _, v := range p.Verts {
			w.WriteFloat32s(v[:])
		}
		w.WriteFloat32s(p.Plane.Normal[:])
		w.WriteFloat32(p.Plane.Dist)
		w.WriteUint32(uint32(len(p.Links)))
		for _, id := range p.Links {
			w.WriteInt32(int32(id))
		}
	}

	w.WriteUint32(uint32(len(nm.links)))
	for _, l := range nm.links {
		w.WriteInt32(int32(l.From))
		w.WriteInt32(int32(l.To))
		w.WriteUint8(uint8(l.Kind))
		w.WriteFloat32(l.HeightDelta)
		w.WriteFloat32s(l.SourceEdge.A[:])
		w.WriteFloat32s(l.SourceEdge.B[:])
		w.WriteFloat32s(l.DestEdge.A[:])
		w.WriteFloat32s(l.DestEdge.B[:])
	}
	return w.Bytes()
}

// FromData restores a mesh from a snapshot produced by Data.
func FromData(data []byte) (*Navmesh, error) {
	r := rw.NewReader(data)
	if magic := r.ReadUint32(); magic != snapshotMagic {
		return nil, fmt.Errorf("bad navmesh snapshot magic %#x", magic)
	}
	if version := r.ReadUint32(); version != snapshotVersion {
		return nil, fmt.Errorf("unsupported navmesh snapshot version %d", version)
	}

	var cfg Config
	params := make([]float32, 10)
	r.ReadFloat32s(params)
	cfg.AgentRadius = params[0]
	cfg.MaxSlopeDeg = params[1]
	cfg.MaxStepHeight = params[2]
	cfg.MaxClimbHeight = params[3]
	cfg.Tolerance = params[4]
	cfg.MinOverlap = params[5]
	cfg.CellSize = params[6]
	cfg.MaxQueryRange = params[7]
	cfg.HeuristicScale = params[8]
	cfg.StepUpCost = params[9]
	cfg.MaxNodes = int(r.ReadInt32())

	const sane = 1 << 24
	polyCount := r.ReadUint32()
	if polyCount > sane {
		return nil, fmt.Errorf("implausible polygon count %d", polyCount)
	}
	polys := make([]Polygon, polyCount)
	for i := range polys {
		vertCount := r.ReadUint32()
		if vertCount > sane {
			return nil, fmt.Errorf("implausible vertex count %d", vertCount)
		}
		verts := make([]common.Vec3, vertCount)
		for j := range verts {
			r.ReadFloat32s(verts[j][:])
		}
		polys[i].ID = PolyID(i)
		polys[i].Verts = verts
		r.ReadFloat32s(polys[i].Plane.Normal[:])
		polys[i].Plane.Dist = r.ReadFloat32()
		linkCount := r.ReadUint32()
		if linkCount > sane {
			return nil, fmt.Errorf("implausible link count %d", linkCount)
		}
		polys[i].Links = make([]LinkID, linkCount)
		for j := range polys[i].Links {
			polys[i].Links[j] = LinkID(r.ReadInt32())
		}
	}

	linkCount := r.ReadUint32()
	if linkCount > sane {
		return nil, fmt.Errorf("implausible link count %d", linkCount)
	}
	links := make([]Link, linkCount)
	for i := range links {
		links[i].From = PolyID(r.ReadInt32())
		links[i].To = PolyID(r.ReadInt32())
		links[i].Kind = LinkKind(r.ReadUint8())
		links[i].HeightDelta = r.ReadFloat32()
		r.ReadFloat32s(links[i].SourceEdge.A[:])
		r.ReadFloat32s(links[i].SourceEdge.B[:])
		r.ReadFloat32s(links[i].DestEdge.A[:])
		r.ReadFloat32s(links[i].DestEdge.B[:])
	}

	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("decode navmesh snapshot: %w", err)
	}

	for i := range polys {
		for _, id := range polys[i].Links {
			if id < 0 || int(id) >= len(links) {
				return nil, fmt.Errorf("polygon %d references link %d of %d", i, id, len(links))
			}
		}
	}
	for i := range links {
		if links[i].From < 0 || int(links[i].From) >= len(polys) ||
			links[i].To < 0 || int(links[i].To) >= len(polys) {
			return nil, fmt.Errorf("link %d references polygons %d,%d of %d",
				i, links[i].From, links[i].To, len(polys))
		}
	}

	nm := &Navmesh{polys: polys, links: links, cfg: cfg}
	nm.index = newGridIndex(polys, cfg.CellSize)
	return nm, nil
}
