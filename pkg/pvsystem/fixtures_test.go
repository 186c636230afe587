package pvsystem_test

import "github.com/goliatone/go-pvsim/pkg/pvsystem"

// A 96-cell 220 W module characterised for the Sandia performance model.
func frontierML220() pvsystem.ModuleParameters {
	return pvsystem.ModuleParameters{
		"Cells_in_Series": 96,
		"Isco":            5.09,
		"Impo":            4.55,
		"Voco":            59.26,
		"Vmpo":            48.32,
		"Aisc":            0.000397,
		"Aimp":            0.000181,
		"Bvoco":           -0.1697,
		"Mbvoc":           0,
		"Bvmpo":           -0.1619,
		"Mbvmp":           0,
		"N":               1.4032,
		"C0":              1.01284,
		"C1":              -0.0128398,
		"C2":              0.279317,
		"C3":              -7.24463,
		"C4":              0.9964,
		"C5":              0.0036,
		"C6":              1.0985,
		"C7":              -0.0985,
		"IXO":             4.97,
		"IXXO":            3.18,
		"FD":              1,
		"A0":              0.928385,
		"A1":              0.068093,
		"A2":              -0.0157738,
		"A3":              0.0016606,
		"A4":              -6.93e-05,
		"B0":              1,
		"B1":              -0.002438,
		"B2":              0.0003103,
		"B3":              -1.246e-05,
		"B4":              2.112e-07,
		"B5":              -1.359e-09,
	}
}

// A 225 W-class module characterised for the CEC single-diode model.
func frontierSD225() pvsystem.ModuleParameters {
	return pvsystem.ModuleParameters{
		"alpha_sc": 0.004539,
		"a_ref":    2.6373,
		"I_L_ref":  5.114,
		"I_o_ref":  8.196e-10,
		"R_sh_ref": 381.68,
		"R_s":      1.065,
		"Adjust":   8.7,
	}
}

// A 250 W microinverter characterised for the Sandia inverter model. The
// night tare is negligible and recorded as zero.
func cobaltM250() pvsystem.InverterParameters {
	return pvsystem.InverterParameters{
		"Paco": 250,
		"Pdco": 259.589,
		"Vdco": 40.242,
		"Pso":  1.771,
		"C0":   -2.88e-05,
		"C1":   -1.11e-04,
		"C2":   8.0e-04,
		"C3":   -0.0352,
		"Pnt":  0,
	}
}

// A 5 kW string inverter with a measurable night tare.
func summitS5000() pvsystem.InverterParameters {
	return pvsystem.InverterParameters{
		"Paco": 5000,
		"Pdco": 5209,
		"Vdco": 310,
		"Pso":  18.6,
		"C0":   -6.6e-06,
		"C1":   -3.2e-05,
		"C2":   0.00112,
		"C3":   -0.00245,
		"Pnt":  0.9,
	}
}
