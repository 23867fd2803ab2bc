// Package builder defines shared constants used to prefix errors and to
// resolve document defaults.
package builder

//-----------------------------------------------------------------------------
// Method Name Constants
//   used to prefix errors with the build stage for context.
//-----------------------------------------------------------------------------

const (
	// MethodParse is the canonical name for Parse.
	MethodParse = "Parse"
	// MethodLoad is the canonical name for Load.
	MethodLoad = "Load"
	// MethodLinks is the stage building the anchor and links.
	MethodLinks = "Links"
	// MethodJoints is the stage building revolute joints.
	MethodJoints = "Joints"
	// MethodAngles is the stage building angular constraints.
	MethodAngles = "Angles"
	// MethodSliders is the stage building sliders.
	MethodSliders = "Sliders"
	// MethodMotors is the stage building motors.
	MethodMotors = "Motors"
	// MethodValidate is the final validation stage.
	MethodValidate = "Validate"
	// MethodEncode is the canonical name for Encode.
	MethodEncode = "Encode"
)

//-----------------------------------------------------------------------------
// Angle Units
//-----------------------------------------------------------------------------

// UnitsDegrees selects degrees for every angle in a document.
const UnitsDegrees = "deg"

// UnitsRadians selects radians for every angle in a document.
const UnitsRadians = "rad"
