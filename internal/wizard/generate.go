package wizard

import (
	"bytes"
	"text/template"
)

// Answers holds all user responses from the wizard.
type Answers struct {
	AppName  string
	Image    string
	Port     string
	Replicas string

	Expose     bool
	ExposeHost string

	Namespace string

	WithVolume  bool
	VolumeName  string
	VolumeMount string
	VolumeSize  string
}

const descriptorTemplate = `# kstack app descriptor
# Documentation: https://github.com/eznix86/kstack

apps:
  {{ .AppName }}:
    image: {{ .Image }}
    ports:
      - "{{ .Port }}"
{{- if ne .Replicas "1" }}
    deploy:
      replicas: {{ .Replicas }}
{{- end }}
{{- if .Expose }}
    expose:
      - {{ .ExposeHost }}
{{- end }}
{{- if .WithVolume }}
    volumes:
      - {{ .VolumeName }}:{{ .VolumeMount }}

volumes:
  {{ .VolumeName }}:
    size: {{ .VolumeSize }}
{{- end }}
`

// GenerateDescriptor renders a starter descriptor from wizard answers.
func GenerateDescriptor(answers Answers) (string, error) {
	if answers.AppName == "" {
		answers.AppName = "app"
	}
	if answers.Port == "" {
		answers.Port = "8080:80"
	}
	if answers.Replicas == "" {
		answers.Replicas = "1"
	}
	if answers.WithVolume {
		if answers.VolumeName == "" {
			answers.VolumeName = "data"
		}
		if answers.VolumeMount == "" {
			answers.VolumeMount = "/data"
		}
		if answers.VolumeSize == "" {
			answers.VolumeSize = "1Gi"
		}
	}

	tmpl, err := template.New("descriptor").Parse(descriptorTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, answers); err != nil {
		return "", err
	}

	return buf.String(), nil
}
