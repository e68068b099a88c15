package display

const vertex = `
#version 420

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}
`

const fragment = `
#version 420

uniform vec4 colorOff;
uniform vec4 colorOn;

layout (binding = 0) uniform sampler2D plane;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    // Cells are stored one byte each in the red channel, 0 or 1.
    float cell = texture2D(plane, fragTexCoord).r * 255.0;
    outputColor = mix(colorOff, colorOn, step(0.5, cell));
}
`
