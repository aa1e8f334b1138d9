package nlp

import "strings"

// TechSkills is the static dictionary of technical terms recognized in résumé
// text. Values are canonical display forms; matching happens on the normalized
// form. Substring matching is intentional (cheap recall for composite terms
// like "react native"), so very short entries are avoided.
var TechSkills = []string{
	"JavaScript", "TypeScript", "Python", "Java", "Kotlin", "Swift", "Dart",
	"Golang", "PHP", "Ruby", "Rust", "Scala", "Elixir",
	"React", "React Native", "Angular", "Vue.js", "Next.js", "Svelte",
	"Node.js", "Express", "NestJS", "Spring Boot", "Django", "Flask", "Laravel",
	"Rails", ".NET", "Flutter",
	"HTML", "CSS", "Sass", "Tailwind", "Bootstrap", "Styled Components",
	"Redux", "GraphQL", "REST API", "gRPC", "WebSocket",
	"PostgreSQL", "MySQL", "SQL Server", "Oracle", "SQLite", "MongoDB",
	"Redis", "Elasticsearch", "Firebase", "Firestore", "DynamoDB", "Cassandra",
	"AWS", "Azure", "Google Cloud", "Heroku", "Vercel", "Netlify",
	"Docker", "Kubernetes", "Terraform", "Ansible", "Jenkins", "GitLab CI",
	"GitHub Actions", "CI/CD",
	"Git", "GitHub", "GitLab", "Bitbucket", "Jira", "Confluence",
	"Linux", "Nginx", "Apache", "RabbitMQ", "Kafka",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Pandas",
	"NumPy", "Scikit-learn", "Power BI", "Tableau", "Excel",
	"Figma", "Photoshop", "Illustrator", "Adobe XD",
	"Scrum", "Kanban", "Metodologias Ágeis", "Design System",
	"Testes Unitários", "Testes Automatizados", "Jest", "Cypress", "Selenium",
	"Microsserviços", "Arquitetura Limpa", "Domain-Driven Design",
	"Banco de Dados", "Modelagem de Dados", "ETL", "Data Science",
	"Segurança da Informação", "DevOps", "SRE", "Observabilidade",
	"WordPress", "Salesforce", "SAP", "Android", "iOS",
}

// SoftSkills is the static dictionary of behavioural terms, pt-BR market wording.
var SoftSkills = []string{
	"Comunicação", "Trabalho em Equipe", "Liderança", "Proatividade",
	"Organização", "Resiliência", "Criatividade", "Empatia",
	"Pensamento Crítico", "Resolução de Problemas", "Adaptabilidade",
	"Gestão de Tempo", "Gestão de Projetos", "Gestão de Pessoas",
	"Negociação", "Oratória", "Colaboração", "Autonomia",
	"Atenção aos Detalhes", "Aprendizado Contínuo", "Inteligência Emocional",
	"Foco em Resultados", "Relacionamento Interpessoal", "Planejamento",
	"Tomada de Decisão", "Flexibilidade", "Ética Profissional",
	"Visão Estratégica", "Mentoria", "Escuta Ativa",
}

// ScanDictionary returns dictionary entries present in the normalized text as
// substrings, in dictionary order. False positives on short entries are an
// accepted trade-off of the substring strategy.
func ScanDictionary(normalizedText string, dictionary []string) []string {
	var found []string
	for _, entry := range dictionary {
		needle := Normalize(entry)
		// single-letter needles would match nearly any text
		if len(needle) < 2 {
			continue
		}
		if strings.Contains(normalizedText, needle) {
			found = append(found, entry)
		}
	}
	return found
}
