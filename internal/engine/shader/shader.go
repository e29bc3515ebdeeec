// Package shader compiles GLSL programs and uploads material parameters.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// stage is one shader stage of a program.
type stage struct {
	kind   uint32
	name   string
	source string
}

// CompileProgram compiles the vertex and fragment stages and links them.
// The error carries the driver's info log.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	stages := []stage{
		{gl.VERTEX_SHADER, "vertex", vertexSrc},
		{gl.FRAGMENT_SHADER, "fragment", fragmentSrc},
	}

	program := gl.CreateProgram()
	for _, s := range stages {
		id, err := compileStage(s)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, id)
		// Flagged for deletion; freed once the program is deleted
		defer gl.DeleteShader(id)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", msg)
	}
	return program, nil
}

func compileStage(s stage) (uint32, error) {
	id := gl.CreateShader(s.kind)
	csource, free := gl.Strs(s.source + "\x00")
	gl.ShaderSource(id, 1, csource, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(id, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(id)
		return 0, fmt.Errorf("compile %s shader: %s", s.name, msg)
	}
	return id, nil
}

// infoLog reads a shader or program log with the matching getters.
func infoLog(id uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var logLen int32
	getiv(id, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return "no info log"
	}
	buf := make([]byte, logLen)
	getLog(id, logLen, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

// uniformLocation returns the location of name in program, -1 if the
// program does not use it.
func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
