package federation

// types that exist only to support federation machinery. never printed.
var federationTypes = map[string]bool{
	"_Any":     true,
	"_Entity":  true,
	"_Service": true,
}

// fields added to the query root for federation machinery. never printed.
var federationQueryFields = map[string]bool{
	"_entities": true,
	"_service":  true,
}

const (
	// InaccessibleDirective is a core directive of the federation 2 core-schema model, it is never namespaced.
	// TODO make the unnamespaced directives a set if federation 2 reserves another one.
	InaccessibleDirective = "inaccessible"

	DefaultLinkNamespace = "federation"

	FederationSpecURL = "https://specs.apollo.dev/federation/v2.3"
)

func IsFederationType(name string) bool {
	return federationTypes[name]
}

func IsFederationQueryField(name string) bool {
	return federationQueryFields[name]
}
