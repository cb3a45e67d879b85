package blocks

// gpuMesh is the uploaded geometry of one chunk.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

const mainVertShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 proj;
uniform mat4 view;
uniform mat4 model;

out vec3 Normal;
out vec2 UV;
out float ViewDepth;

void main() {
	vec4 viewPos = view * model * vec4(aPos, 1.0);
	gl_Position = proj * viewPos;
	Normal = aNormal;
	UV = aUV;
	ViewDepth = -viewPos.z;
}
`

const mainFragShader = `#version 410 core
in vec3 Normal;
in vec2 UV;
in float ViewDepth;

uniform sampler2D atlas;
uniform vec3 lightDir;
uniform vec3 fogColor;
uniform float fogEnd;

out vec4 FragColor;

void main() {
	vec4 tex = texture(atlas, UV);
	if (tex.a < 0.5) {
		discard;
	}
	float diffuse = max(dot(normalize(Normal), lightDir), 0.0);
	vec3 color = tex.rgb * (0.55 + 0.45 * diffuse);
	float fog = clamp((ViewDepth - fogEnd * 0.7) / (fogEnd * 0.3), 0.0, 1.0);
	FragColor = vec4(mix(color, fogColor, fog), 1.0);
}
`
