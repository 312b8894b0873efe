package ipaddr

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		token string
		want  Class
	}{
		{"8.8.8.8", Public},
		{"1.2.3.4", Public},
		{"255.255.255.255", Public},
		{"0.0.0.0", Public},
		{"127.0.0.2", Public},
		{"172.15.255.255", Public},
		{"172.32.0.1", Public},
		{"169.254.1.1", Public},
		{"127.0.0.1", Loopback},
		{"127.000.0.01", Loopback},
		{"10.0.0.5", Private},
		{"10.255.255.255", Private},
		{"172.16.0.1", Private},
		{"172.31.255.254", Private},
		{"192.168.1.1", Private},
		{"1.2.3.256", Invalid},
		{"1.2.3", Invalid},
		{"abc", Invalid},
		{"", Invalid},
		{"1.2.3.4.5", Invalid},
		{" 1.2.3.4", Invalid},
		{"1.2.3.4\n", Invalid},
		{"ip 1.2.3.4", Invalid},
		{"1.2.3.-4", Invalid},
		{"1234.2.3.4", Invalid},
		{"not-an-ip", Invalid},
	}
	for _, tc := range cases {
		if got := Classify(tc.token); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.token, got, tc.want)
		}
	}
}

func TestParseCanonical(t *testing.T) {
	got, class := Parse("010.001.000.005")
	if class != Private {
		t.Fatalf("class = %s, want private", class)
	}
	if got != "10.1.0.5" {
		t.Fatalf("canonical = %q, want 10.1.0.5", got)
	}
	if got, class := Parse("x"); got != "" || class != Invalid {
		t.Fatalf("Parse(x) = %q, %s", got, class)
	}
}

func TestValidTrims(t *testing.T) {
	if !Valid(" 8.8.4.4 ") {
		t.Fatal("expected trimmed address to be valid")
	}
	if Valid("8.8.4") {
		t.Fatal("expected short address to be invalid")
	}
}
