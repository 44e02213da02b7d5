package config

import (
	"testing"

	"github.com/spf13/viper"
)

func Test_New(t *testing.T) {
	viper.Reset()

	c := New()

	if c.Tools.FeatureCounts != "featureCounts" {
		t.Errorf("New() Tools.FeatureCounts = %s, want featureCounts", c.Tools.FeatureCounts)
	}
	if c.Trim.MinLength != 20 {
		t.Errorf("New() Trim.MinLength = %d, want 20", c.Trim.MinLength)
	}
	if c.Quant.FeatureType != "exon" {
		t.Errorf("New() Quant.FeatureType = %s, want exon", c.Quant.FeatureType)
	}
	if !c.Quant.Paired {
		t.Error("New() Quant.Paired = false, want true")
	}
}

func Test_New_overrides(t *testing.T) {
	viper.Reset()
	viper.Set("tools.hisat2", "/opt/hisat2/hisat2")
	viper.Set("trim.min-length", 36)
	defer viper.Reset()

	c := New()

	if c.Tools.Hisat2 != "/opt/hisat2/hisat2" {
		t.Errorf("New() Tools.Hisat2 = %s, want /opt/hisat2/hisat2", c.Tools.Hisat2)
	}
	if c.Trim.MinLength != 36 {
		t.Errorf("New() Trim.MinLength = %d, want 36", c.Trim.MinLength)
	}
}
