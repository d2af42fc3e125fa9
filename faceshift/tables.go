package faceshift

// ShapePrefix is the rig property prefix of FaceShift blend shapes.
const ShapePrefix = "Mfa"

var FaceShiftBones = map[string][]string{
	"Neck":      {"neck", "neck02"},
	"eye_left":  {"eye.L"},
	"eye_right": {"eye.R"},
}

var FaceShiftShapes = map[string]string{
	"neutral":        "Rest",
	"BrowsD_L":       "LeftBrowDown",
	"BrowsD_R":       "RightBrowDown",
	"BrowsU_C":       "BrowsUp",
	"BrowsU_L":       "LeftInnerBrowUp",
	"BrowsU_R":       "RightInnerBrowUp",
	"CheekSquint_L":  "LeftCheekUp",
	"CheekSquint_R":  "RightCheekUp",
	"ChinLowerRaise": "ChinUp",
	"ChinUpperRaise": "UpperLipUp3",
	"EyeBlink_L":     "LeftUpperLidClosed",
	"EyeBlink_R":     "RightUpperLidClosed",
	"EyeDown_L":      "LeftEyeDown",
	"EyeDown_R":      "RightEyeDown",
	"EyeIn_L":        "LeftEyeturnRight",
	"EyeIn_R":        "RightEyeturnLeft",
	"EyeOpen_L":      "LeftUpperLidOpen",
	"EyeOpen_R":      "RightUpperLidOpen",
	"EyeOut_L":       "LeftEyeturnLeft",
	"EyeOut_R":       "RightEyeturnRight",
	"EyeSquint_L":    "LeftLowerLidUp",
	"EyeSquint_R":    "RightLowerLidUp",
	"EyeUp_L":        "LeftEyeUp",
	"EyeUp_R":        "RightEyeUp",
	"JawChew":        "JawClosedOffset",
	"JawFwd":         "ChinForward",
	"JawLeft":        "ChinLeft",
	"JawRight":       "ChinRight",
	"JawOpen":        "JawDrop",
	"LipsFunnel":     "LipsOpenKiss",
	"LipsLowerClose": "lowerLipUp",
	"LipsLowerDown":  "lowerLipDown",
	"LipsLowerOpen":  "LowerLipsDown2",
	"LipsPucker":     "LipsKiss",
	"LipsStretch_L":  "MouthLeftSmile",
	"LipsStretch_R":  "MouthRightSmile",
	"LipsUpperClose": "UpperLipDown",
	"LipsUpperOpen":  "UpperLipUp",
	"LipsUpperUp":    "UpperLipUp2",
	"MouthDimple_L":  "MouthLeftPullSide",
	"MouthDimple_R":  "MouthRightPullSide",
	"MouthFrown_L":   "MouthLeftPullDown",
	"MouthFrown_R":   "MouthRightPullDown",
	"MouthLeft":      "MouthMoveLeft",
	"MouthRight":     "MouthMoveRight",
	"MouthSmile_L":   "MouthLeftPlatysma",
	"MouthSmile_R":   "MouthRightPlatysma",
	"Puff":           "CheeksPump",
	"Sneer":          "FaceTension",
}
