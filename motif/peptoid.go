package motif

import "github.com/curvelab/ssorder/geom"

// peptoidAtomsPerResidue is the number of backbone atoms per peptoid
// residue: CLP, OL, NL, CA and CB1.
const peptoidAtomsPerResidue = 5

// The built-in peptoid secondary-structure templates. Each table is three
// residues of idealized backbone geometry, in angstroms, five atoms per
// residue in CLP, OL, NL, CA, CB1 order.
func init() {
	mustRegister(&Template{
		Name:            "alpha-d-minus-trans",
		AtomsPerResidue: peptoidAtomsPerResidue,
		Coords: []geom.Coords{
			{-0.695, -2.153, -0.137},
			{0.505, -2.273, 0.133},
			{-1.635, -2.923, 0.533},
			{-1.105, -3.843, 1.533},
			{-3.095, -2.733, 0.433},
			{0.335, 0.637, -0.337},
			{-0.365, 0.557, 0.703},
			{0.035, -0.183, -1.377},
			{-1.085, -1.153, -1.177},
			{0.575, -0.023, -2.727},
			{0.735, 3.627, 0.653},
			{-0.075, 3.727, -0.247},
			{1.595, 2.567, 0.753},
			{1.545, 1.637, -0.377},
			{2.735, 2.527, 1.633},
		},
	})

	mustRegister(&Template{
		Name:            "alpha-d-plus-cis",
		AtomsPerResidue: peptoidAtomsPerResidue,
		Coords: []geom.Coords{
			{0.652, -0.556, 1.749},
			{-0.528, -0.886, 1.699},
			{1.142, -0.096, 2.889},
			{2.342, 0.774, 2.859},
			{0.562, -0.466, 4.139},
			{0.122, -0.686, -1.331},
			{-0.488, -1.336, -2.161},
			{1.052, -1.416, -0.561},
			{1.652, -0.786, 0.589},
			{1.372, -2.706, -1.041},
			{-2.438, 1.434, -1.261},
			{-3.428, 1.984, -1.761},
			{-1.108, 1.604, -1.691},
			{-0.038, 0.834, -1.121},
			{-0.868, 2.304, -3.001},
		},
	})

	mustRegister(&Template{
		Name:            "alpha-d-plus-trans",
		AtomsPerResidue: peptoidAtomsPerResidue,
		Coords: []geom.Coords{
			{1.501, -1.523, 0.503},
			{0.661, -2.303, 0.193},
			{2.051, -1.673, 1.673},
			{1.491, -2.533, 2.693},
			{3.351, -1.193, 2.133},
			{-0.229, 0.607, -0.657},
			{-0.189, 0.707, 0.563},
			{0.801, -0.013, -1.317},
			{1.911, -0.363, -0.417},
			{3.241, 0.171, -0.772},
			{-2.699, 2.577, -0.137},
			{-1.769, 3.437, -0.237},
			{-2.559, 1.297, -0.527},
			{-1.459, 1.137, -1.437},
			{-3.609, 0.267, -0.357},
		},
	})

	mustRegister(&Template{
		Name:            "alpha-minus-cis",
		AtomsPerResidue: peptoidAtomsPerResidue,
		Coords: []geom.Coords{
			{0.561, 0.555, -1.831},
			{-0.329, 1.365, -2.011},
			{0.721, -0.545, -2.601},
			{1.971, -1.365, -2.601},
			{-0.359, -1.095, -3.441},
			{0.371, -0.985, 0.919},
			{0.591, -2.085, 1.399},
			{1.391, -0.125, 0.579},
			{1.441, 0.785, -0.601},
			{2.491, 0.065, 1.549},
			{-1.689, 0.595, 2.739},
			{-2.049, 1.665, 3.239},
			{-1.609, 0.465, 1.379},
			{-1.089, -0.685, 0.629},
			{-2.419, 1.385, 0.649},
		},
	})

	mustRegister(&Template{
		Name:            "alpha-minus-trans",
		AtomsPerResidue: peptoidAtomsPerResidue,
		Coords: []geom.Coords{
			{0.689, 0.490, -2.292},
			{1.299, -0.410, -2.882},
			{1.289, 1.700, -2.042},
			{2.659, 1.940, -2.602},
			{0.379, 2.830, -1.752},
			{0.089, -0.730, 0.318},
			{1.199, -0.200, 0.188},
			{-0.951, -0.530, -0.552},
			{-0.741, 0.140, -1.832},
			{-2.241, -1.200, -0.422},
			{-1.041, 0.070, 3.178},
			{-0.461, 0.930, 2.518},
			{-0.861, -1.210, 2.838},
			{-0.081, -1.500, 1.628},
			{-1.221, -2.320, 3.708},
		},
	})

	mustRegister(&Template{
		Name:            "alpha-plus-cis",
		AtomsPerResidue: peptoidAtomsPerResidue,
		Coords: []geom.Coords{
			{1.673, 0.611, 0.773},
			{1.903, 1.671, 0.263},
			{1.813, 0.531, 2.113},
			{2.543, -0.679, 2.623},
			{1.183, 1.541, 2.903},
			{-1.107, -0.649, 0.403},
			{-2.057, -1.109, 1.0331},
			{0.103, -1.349, 0.283},
			{1.323, -0.599, -0.097},
			{-0.077, -2.789, 0.073},
			{-1.947, -0.259, -2.417},
			{-1.547, -0.389, -3.577},
			{-1.377, 0.761, -1.737},
			{-1.277, 0.711, -0.247},
			{-1.147, 2.001, -2.397},
		},
	})

	mustRegister(&Template{
		Name:            "alpha-plus-trans",
		AtomsPerResidue: peptoidAtomsPerResidue,
		Coords: []geom.Coords{
			{-0.657, -1.999, 1.185},
			{-0.647, -2.439, 2.345},
			{-1.817, -1.879, 0.525},
			{-3.167, -1.959, 1.195},
			{-1.727, -2.019, -0.945},
			{0.703, 0.621, 0.545},
			{-0.037, 0.551, 1.525},
			{1.143, -0.609, -0.085},
			{0.683, -1.819, 0.595},
			{2.293, -0.629, -1.055},
			{-0.167, 2.421, -1.745},
			{-1.067, 2.041, -1.035},
			{1.113, 2.441, -1.265},
			{1.283, 1.961, 0.145},
			{2.063, 3.311, -1.925},
		},
	})

	mustRegister(&Template{
		Name:            "c7beta-minus-cis",
		AtomsPerResidue: peptoidAtomsPerResidue,
		Coords: []geom.Coords{
			{-1.618, 1.192, -0.985},
			{-2.388, 0.242, -0.895},
			{-1.858, 2.342, -0.345},
			{-0.938, 3.592, -0.415},
			{-3.118, 2.572, 0.255},
			{1.122, -0.858, -0.755},
			{1.892, -1.838, -1.035},
			{0.162, -0.398, -1.625},
			{-0.258, 0.982, -1.515},
			{-0.058, -1.068, -2.855},
			{0.532, -1.498, 2.525},
			{0.802, -2.138, 3.575},
			{1.512, -1.228, 1.655},
			{1.382, -0.188, 0.545},
			{2.832, -1.708, 1.865},
		},
	})

	mustRegister(&Template{
		Name:            "c7beta-minus-trans",
		AtomsPerResidue: peptoidAtomsPerResidue,
		Coords: []geom.Coords{
			{1.391, -1.861, 1.332},
			{0.941, -2.991, 1.732},
			{2.731, -1.621, 1.132},
			{3.661, -2.681, 1.522},
			{3.341, -0.391, 0.512},
			{-0.089, 1.049, -0.178},
			{0.631, 1.769, 0.552},
			{-0.189, -0.321, 0.092},
			{0.341, -0.811, 1.322},
			{-0.809, -1.191, -0.868},
			{-3.169, 1.689, -2.098},
			{-2.709, 1.109, -3.038},
			{-2.339, 1.979, -1.018},
			{-0.919, 1.789, -1.238},
			{-2.809, 2.489, 0.242},
		},
	})

	mustRegister(&Template{
		Name:            "c7beta-plus-cis",
		AtomsPerResidue: peptoidAtomsPerResidue,
		Coords: []geom.Coords{
			{1.906, -0.661, 0.881},
			{1.946, -1.831, 0.491},
			{1.636, -0.431, 2.231},
			{1.806, 0.849, 2.941},
			{1.336, -1.621, 3.091},
			{-0.114, 0.779, -1.469},
			{-0.604, 0.919, -2.559},
			{1.196, 0.299, -1.359},
			{1.966, 0.499, -0.059},
			{1.906, 0.189, -2.589},
			{-2.644, -0.811, -0.129},
			{-3.794, -1.071, 0.281},
			{-2.254, 0.479, -0.549},
			{-0.954, 1.029, -0.349},
			{-3.334, 1.389, -0.859},
		},
	})

	mustRegister(&Template{
		Name:            "c7beta-plus-trans",
		AtomsPerResidue: peptoidAtomsPerResidue,
		Coords: []geom.Coords{
			{-2.424, -0.383, 1.022},
			{-2.834, -1.493, 1.432},
			{-3.294, 0.447, 0.242},
			{-4.704, -0.033, 0.142},
			{-2.814, 1.597, -0.538},
			{0.856, 0.167, -0.268},
			{0.646, 1.387, -0.138},
			{0.056, -0.653, 0.532},
			{-0.984, -0.103, 1.332},
			{0.026, -2.113, 0.422},
			{3.906, 0.117, -0.328},
			{3.516, -0.533, 0.642},
			{3.026, 0.397, -1.248},
			{1.856, -0.413, -1.208},
			{3.166, 1.617, -2.038},
		},
	})
}
