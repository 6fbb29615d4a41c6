// Package testkit holds fixtures and invariant checks shared by package tests.
package testkit

import "github.com/ppiankov/fbreport/internal/models"

// SampleXML is a small but complete bug report. It has three packages (one
// without bugs), an inner class, a non-primary class reference, a bug pattern
// with no instances and an instance without a SourceLine.
const SampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<BugCollection version="1.3.9" sequence="0" timestamp="1300000000000" analysisTimestamp="1300000000001" release="">
  <Project projectName="acme"/>
  <BugInstance type="NP_NULL_ON_SOME_PATH" priority="1" abbrev="NP" category="CORRECTNESS">
    <ShortMessage>Possible null pointer dereference</ShortMessage>
    <LongMessage>Possible null pointer dereference of conn in com.acme.core.Engine.start()</LongMessage>
    <Class classname="com.acme.core.Engine" primary="true">
      <SourceLine classname="com.acme.core.Engine" start="1" end="80"/>
    </Class>
    <SourceLine classname="com.acme.core.Engine" start="10" end="10" primary="true"/>
  </BugInstance>
  <BugInstance type="DM_STRING_CTOR" priority="2" abbrev="Dm" category="PERFORMANCE">
    <LongMessage>com.acme.web.Servlet$Handler.handle() invokes inefficient new String(String) constructor</LongMessage>
    <Class classname="com.acme.web.Servlet$Handler" primary="true"/>
    <SourceLine classname="com.acme.web.Servlet$Handler" start="42" end="45"/>
  </BugInstance>
  <BugInstance type="DM_STRING_CTOR" priority="2" abbrev="Dm" category="PERFORMANCE">
    <LongMessage>com.acme.core.Util.copy() invokes inefficient new String(String) constructor</LongMessage>
    <Class classname="com.acme.core.Util" primary="true"/>
    <Class classname="com.acme.core.Engine"/>
    <SourceLine classname="com.acme.core.Util" start="7" end="9"/>
  </BugInstance>
  <BugInstance type="NP_NULL_ON_SOME_PATH" priority="3" abbrev="NP" category="CORRECTNESS">
    <LongMessage>Possible null pointer dereference in com.acme.core.Engine.stop()</LongMessage>
    <Class classname="com.acme.core.Engine" primary="true"/>
  </BugInstance>
  <BugCategory category="CORRECTNESS">
    <Description>Correctness</Description>
  </BugCategory>
  <BugCategory category="PERFORMANCE">
    <Description>Performance</Description>
  </BugCategory>
  <BugCategory category="STYLE">
    <Description>Dodgy code</Description>
  </BugCategory>
  <BugPattern type="NP_NULL_ON_SOME_PATH" abbrev="NP" category="CORRECTNESS">
    <ShortDescription>Possible null pointer dereference</ShortDescription>
    <Details><![CDATA[<p>There is a branch of statement that, if executed, guarantees that a null value will be dereferenced.</p>]]></Details>
  </BugPattern>
  <BugPattern type="DM_STRING_CTOR" abbrev="Dm" category="PERFORMANCE">
    <ShortDescription>Method invokes inefficient new String(String) constructor</ShortDescription>
    <Details><![CDATA[<p>Using the <code>java.lang.String(String)</code> constructor wastes memory.</p>]]></Details>
  </BugPattern>
  <BugPattern type="UC_USELESS_CONDITION" abbrev="UC" category="STYLE">
    <ShortDescription>Condition has no effect</ShortDescription>
    <Details><![CDATA[<p>This condition always produces the same result.</p>]]></Details>
  </BugPattern>
  <Errors errors="0" missingClasses="0"/>
  <FindBugsSummary timestamp="Mon, 14 Mar 2011 10:00:00 +0000" total_classes="6" referenced_classes="20" total_bugs="4" total_size="500" num_packages="3" priority_3="1" priority_2="2" priority_1="1">
    <PackageStats package="com.acme.core" total_bugs="3" total_types="3" total_size="350" priority_1="1" priority_2="1" priority_3="1">
      <ClassStats class="com.acme.core.Clean" sourceFile="Clean.java" interface="false" size="50" bugs="0"/>
      <ClassStats class="com.acme.core.Engine" sourceFile="Engine.java" interface="false" size="200" bugs="2" priority_1="1" priority_3="1"/>
      <ClassStats class="com.acme.core.Util" sourceFile="Util.java" interface="false" size="100" bugs="1" priority_2="1"/>
    </PackageStats>
    <PackageStats package="com.acme.model" total_bugs="0" total_types="2" total_size="60">
      <ClassStats class="com.acme.model.Pojo" sourceFile="Pojo.java" interface="false" size="60" bugs="0"/>
    </PackageStats>
    <PackageStats package="com.acme.web" total_bugs="1" total_types="1" total_size="90" priority_2="1">
      <ClassStats class="com.acme.web.Servlet$Handler" sourceFile="Servlet.java" interface="false" size="90" bugs="1" priority_2="1"/>
    </PackageStats>
  </FindBugsSummary>
</BugCollection>
`

// EmptyXML is a report in which the analyzer found nothing
const EmptyXML = `<?xml version="1.0" encoding="UTF-8"?>
<BugCollection version="1.3.9">
  <BugCategory category="CORRECTNESS">
    <Description>Correctness</Description>
  </BugCategory>
  <FindBugsSummary total_classes="2" total_bugs="0" total_size="80" num_packages="1">
    <PackageStats package="com.acme" total_bugs="0" total_types="2" total_size="80">
      <ClassStats class="com.acme.A" size="40" bugs="0"/>
      <ClassStats class="com.acme.B" size="40" bugs="0"/>
    </PackageStats>
  </FindBugsSummary>
</BugCollection>
`

// Sample returns the model SampleXML loads into.
func Sample() *models.BugCollection {
	return &models.BugCollection{
		Version: "1.3.9",
		Summary: models.FindBugsSummary{
			TotalBugs:    "4",
			Priority1:    "1",
			Priority2:    "2",
			Priority3:    "1",
			TotalSize:    "500",
			TotalClasses: "6",
			NumPackages:  "3",
		},
		Packages: []models.PackageStats{
			{
				Name: "com.acme.core", TotalTypes: "3", TotalSize: "350", TotalBugs: "3",
				Classes: []models.ClassStats{
					{Name: "com.acme.core.Clean", Size: "50", Bugs: "0"},
					{Name: "com.acme.core.Engine", Size: "200", Bugs: "2"},
					{Name: "com.acme.core.Util", Size: "100", Bugs: "1"},
				},
			},
			{
				Name: "com.acme.model", TotalTypes: "2", TotalSize: "60", TotalBugs: "0",
				Classes: []models.ClassStats{
					{Name: "com.acme.model.Pojo", Size: "60", Bugs: "0"},
				},
			},
			{
				Name: "com.acme.web", TotalTypes: "1", TotalSize: "90", TotalBugs: "1",
				Classes: []models.ClassStats{
					{Name: "com.acme.web.Servlet$Handler", Size: "90", Bugs: "1"},
				},
			},
		},
		Categories: []models.BugCategory{
			{Code: "CORRECTNESS", Description: "Correctness"},
			{Code: "PERFORMANCE", Description: "Performance"},
			{Code: "STYLE", Description: "Dodgy code"},
		},
		Patterns: []models.BugPattern{
			{
				Type: "NP_NULL_ON_SOME_PATH", Category: "CORRECTNESS",
				ShortDescription: "Possible null pointer dereference",
				Details:          "<p>There is a branch of statement that, if executed, guarantees that a null value will be dereferenced.</p>",
			},
			{
				Type: "DM_STRING_CTOR", Category: "PERFORMANCE",
				ShortDescription: "Method invokes inefficient new String(String) constructor",
				Details:          "<p>Using the <code>java.lang.String(String)</code> constructor wastes memory.</p>",
			},
			{
				Type: "UC_USELESS_CONDITION", Category: "STYLE",
				ShortDescription: "Condition has no effect",
				Details:          "<p>This condition always produces the same result.</p>",
			},
		},
		Instances: []models.BugInstance{
			{
				Type: "NP_NULL_ON_SOME_PATH", Category: "CORRECTNESS", Priority: "1",
				LongMessage: "Possible null pointer dereference of conn in com.acme.core.Engine.start()",
				Classes:     []models.ClassRef{{Name: "com.acme.core.Engine", Primary: true}},
				SourceLine:  &models.SourceLine{Start: "10", End: "10"},
			},
			{
				Type: "DM_STRING_CTOR", Category: "PERFORMANCE", Priority: "2",
				LongMessage: "com.acme.web.Servlet$Handler.handle() invokes inefficient new String(String) constructor",
				Classes:     []models.ClassRef{{Name: "com.acme.web.Servlet$Handler", Primary: true}},
				SourceLine:  &models.SourceLine{Start: "42", End: "45"},
			},
			{
				Type: "DM_STRING_CTOR", Category: "PERFORMANCE", Priority: "2",
				LongMessage: "com.acme.core.Util.copy() invokes inefficient new String(String) constructor",
				Classes: []models.ClassRef{
					{Name: "com.acme.core.Util", Primary: true},
					{Name: "com.acme.core.Engine"},
				},
				SourceLine: &models.SourceLine{Start: "7", End: "9"},
			},
			{
				Type: "NP_NULL_ON_SOME_PATH", Category: "CORRECTNESS", Priority: "3",
				LongMessage: "Possible null pointer dereference in com.acme.core.Engine.stop()",
				Classes:     []models.ClassRef{{Name: "com.acme.core.Engine", Primary: true}},
			},
		},
	}
}
