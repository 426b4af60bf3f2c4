package vec_test

import (
	"math"
	"testing"

	"github.com/basswood/kerncad/pkg/vec"
	"github.com/stretchr/testify/require"
)

func TestVec3Basics(t *testing.T) {
	a := vec.Vec3{X: 1, Y: 2, Z: 3}
	b := vec.Vec3{X: 4, Y: -1, Z: 0.5}

	require.Equal(t, vec.Vec3{X: 5, Y: 1, Z: 3.5}, a.Add(b))
	require.Equal(t, vec.Vec3{X: -3, Y: 3, Z: 2.5}, a.Sub(b))
	require.InDelta(t, 1*4+2*-1+3*0.5, a.Dot(b), 1e-9)

	cross := vec.Vec3{X: 1, Y: 0, Z: 0}.Cross(vec.Vec3{X: 0, Y: 1, Z: 0})
	require.Equal(t, vec.Vec3{X: 0, Y: 0, Z: 1}, cross)
}

func TestVec3Normalize(t *testing.T) {
	v := vec.Vec3{X: 3, Y: 4, Z: 0}
	n := v.Normalize()
	require.InDelta(t, 1.0, n.Length(), 1e-9)

	zero := vec.Vec3{}
	require.Equal(t, zero, zero.Normalize())
}

func TestRotateXYZIdentityRoundTrip(t *testing.T) {
	p := vec.Vec3{X: 1.3, Y: -2.7, Z: 0.4}
	m := vec.RotateZ(0.7).Mul(vec.RotateY(1.1)).Mul(vec.RotateX(-0.3))
	inv := m.Transpose()

	round := inv.MulVec(m.MulVec(p))
	require.InDelta(t, p.X, round.X, 1e-9)
	require.InDelta(t, p.Y, round.Y, 1e-9)
	require.InDelta(t, p.Z, round.Z, 1e-9)
}

func TestRotateZQuarterTurn(t *testing.T) {
	m := vec.RotateZ(math.Pi / 2)
	r := m.MulVec(vec.Vec3{X: 1, Y: 0, Z: 0})
	require.InDelta(t, 0.0, r.X, 1e-9)
	require.InDelta(t, 1.0, r.Y, 1e-9)
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0.0, vec.Clamp(-1, 0, 1))
	require.Equal(t, 1.0, vec.Clamp(2, 0, 1))
	require.Equal(t, 0.5, vec.Clamp(0.5, 0, 1))
}
