package glrender

// vertexShaderSource and fragmentShaderSource implement the minimal
// pipeline SetMesh's interleaved vertex layout needs: position, normal,
// uv, and per-vertex color in; a single directional light's worth of
// diffuse shading out. No shader asset files ship with this repository,
// so the sources are embedded as Go constants rather than read from disk.
const vertexShaderSource = `
#version 460 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;
layout (location = 3) in vec4 aColor;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 vNormal;
out vec2 vUV;
out vec4 vColor;

void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
    vNormal = mat3(model) * aNormal;
    vUV = aUV;
    vColor = aColor;
}
`

const fragmentShaderSource = `
#version 460 core
in vec3 vNormal;
in vec2 vUV;
in vec4 vColor;

out vec4 FragColor;

const vec3 lightDir = normalize(vec3(0.4, 1.0, 0.3));

void main() {
    float diffuse = max(dot(normalize(vNormal), lightDir), 0.0);
    float lit = 0.35 + 0.65 * diffuse;
    FragColor = vec4(vColor.rgb * lit, vColor.a);
}
`
