package swirl

import (
	_ "embed"
)

//go:embed shape_rectangle.wgsl
var rectangleWGSL string

//go:embed shape_circle.wgsl
var circleWGSL string
