package federation

import "testing"

func TestResolveDirectiveName(t *testing.T) {
	tests := []struct {
		name           string
		directiveName  string
		isFederationV2 bool
		linkNamespace  string
		expected       string
	}{
		{"v1 key", "key", false, "federation", "key"},
		{"v1 inaccessible", "inaccessible", false, "federation", "inaccessible"},
		{"v1 ignores namespace", "tag", false, "fed", "tag"},
		{"v2 key", "key", true, "federation", "federation__key"},
		{"v2 custom namespace", "shareable", true, "fed", "fed__shareable"},
		{"v2 inaccessible", "inaccessible", true, "federation", "inaccessible"},
		{"v2 inaccessible with custom namespace", "inaccessible", true, "fed", "inaccessible"},
		{"v2 unknown directive", "myDirective", true, "federation", "federation__myDirective"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := ResolveDirectiveName(tt.directiveName, tt.isFederationV2, tt.linkNamespace)
			if actual != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, actual)
			}
			if again := ResolveDirectiveName(tt.directiveName, tt.isFederationV2, tt.linkNamespace); again != actual {
				t.Errorf("result changed on second call: %s, %s", actual, again)
			}
		})
	}
}

func TestContext(t *testing.T) {
	tests := []struct {
		ctx       *Context
		v2        bool
		namespace string
	}{
		{nil, false, "federation"},
		{&Context{}, false, "federation"},
		{&Context{Version: "1"}, false, "federation"},
		{&Context{Version: "1.0", LinkNamespace: "fed"}, false, "fed"},
		{&Context{Version: "2"}, true, "federation"},
		{&Context{Version: "2.3", LinkNamespace: "fed"}, true, "fed"},
		{&Context{Version: "v2.0"}, true, "federation"},
		{&Context{Version: "20"}, false, "federation"},
	}
	for _, tt := range tests {
		if v := tt.ctx.IsFederationV2(); v != tt.v2 {
			t.Errorf("%+v: IsFederationV2 expected %v, got %v", tt.ctx, tt.v2, v)
		}
		if v := tt.ctx.Namespace(); v != tt.namespace {
			t.Errorf("%+v: Namespace expected %s, got %s", tt.ctx, tt.namespace, v)
		}
	}
}
