package ratedata

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/opentariff/tariff/internal/tariff/model"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return d
}

func TestDecodeClassifications(t *testing.T) {
	csv := `code,description,level,parent_code,unit_of_qty,active
84,Machinery and mechanical appliances,CHAPTER,,,true
8471,Automatic data processing machines,HEADING,84,,true
8471.30.00,"Portable machines, weighing not more than 10 kg",STATISTICAL_LINE,8471,No,true
`
	records, err := decodeClassifications(strings.NewReader(csv))
	assert.NoError(t, err)
	if assert.Len(t, records, 3) {
		assert.Equal(t, "84", records[0].Code)
		assert.Nil(t, records[0].ParentCode)
		assert.Equal(t, model.LevelChapter, records[0].Level)
		if assert.NotNil(t, records[2].ParentCode) {
			assert.Equal(t, "8471", *records[2].ParentCode)
		}
		assert.Equal(t, "No", records[2].UnitOfQty)
	}
}

func TestDecodeClassifications_RejectsEmptyCode(t *testing.T) {
	csv := `code,description,level,parent_code,unit_of_qty,active
,missing code,CHAPTER,,,true
`
	_, err := decodeClassifications(strings.NewReader(csv))
	assert.ErrorContains(t, err, "row 2")
}

func TestDecodeGeneralRates(t *testing.T) {
	csv := `classification_code,kind,rate,unit,effective_from,effective_to
8471.30.00,AD_VALOREM,5.00,,2020-01-01,
2204.21.10,SPECIFIC,1.22,L,2020-01-01,2024-12-31
`
	records, err := decodeGeneralRates(strings.NewReader(csv))
	assert.NoError(t, err)
	if assert.Len(t, records, 2) {
		assert.Equal(t, model.RateKindAdValorem, records[0].Kind)
		assert.True(t, records[0].Rate.Equal(decimalFromString(t, "5.00")))
		assert.Nil(t, records[0].EffectiveTo)
		assert.Equal(t, "L", records[1].Unit)
		if assert.NotNil(t, records[1].EffectiveTo) {
			assert.Equal(t, 2024, records[1].EffectiveTo.Year())
		}
	}
}

func TestDecodePreferentialRates(t *testing.T) {
	csv := `classification_code,agreement_code,origin_country,rate,staging_category,rule_of_origin,safeguard_applicable,effective_from,effective_to
8471.30.00,AUSFTA,usa,0,a,CTH,false,2005-01-01,
`
	records, err := decodePreferentialRates(strings.NewReader(csv))
	assert.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.Equal(t, "USA", records[0].OriginCountry, "country codes normalized on load")
		assert.Equal(t, "A", records[0].StagingCategory)
		assert.False(t, records[0].SafeguardApplicable)
	}
}

func TestDecodeAntiDumpingMeasures(t *testing.T) {
	csv := `classification_code,origin_country,kind,rate_kind,rate,case_reference,active,effective_from,effective_to
7208.39.00,CHN,DUMPING,AD_VALOREM,15.0,ADC2021-014,true,2021-07-01,
7208.39.00,CHN,COUNTERVAILING,AD_VALOREM,4.5,ADC2021-014,true,2021-07-01,
`
	records, err := decodeAntiDumpingMeasures(strings.NewReader(csv))
	assert.NoError(t, err)
	if assert.Len(t, records, 2) {
		assert.Equal(t, model.MeasureKindDumping, records[0].Kind)
		assert.Equal(t, model.MeasureKindCountervailing, records[1].Kind)
		assert.Equal(t, "ADC2021-014", records[0].CaseReference)
	}
}

func TestDecodeConcessionOrders(t *testing.T) {
	csv := `classification_code,order_number,description,current,effective_from,effective_to
8471.30.00,TCO2401234,Portable data terminals,true,2024-01-01,
`
	records, err := decodeConcessionOrders(strings.NewReader(csv))
	assert.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.Equal(t, "TCO2401234", records[0].OrderNumber)
		assert.True(t, records[0].Current)
	}
}

func TestDecodeGstProvisions(t *testing.T) {
	csv := `classification_code,category,exemption_type,active
3004.90.00,MEDICAL,SCHEDULE_4,true
`
	records, err := decodeGstProvisions(strings.NewReader(csv))
	assert.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.Equal(t, "SCHEDULE_4", records[0].ExemptionType)
		assert.True(t, records[0].Active)
	}
}

func TestDecode_BadValuesReportRow(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		csv := `classification_code,kind,rate,unit,effective_from,effective_to
8471.30.00,AD_VALOREM,5.00,,01/01/2020,
`
		_, err := decodeGeneralRates(strings.NewReader(csv))
		assert.ErrorContains(t, err, "row 2")
		assert.ErrorContains(t, err, "effective_from")
	})

	t.Run("bad decimal", func(t *testing.T) {
		csv := `classification_code,kind,rate,unit,effective_from,effective_to
8471.30.00,AD_VALOREM,five,,2020-01-01,
`
		_, err := decodeGeneralRates(strings.NewReader(csv))
		assert.ErrorContains(t, err, "invalid rate")
	})

	t.Run("negative general rate", func(t *testing.T) {
		csv := `classification_code,kind,rate,unit,effective_from,effective_to
8471.30.00,AD_VALOREM,-5.00,,2020-01-01,
`
		_, err := decodeGeneralRates(strings.NewReader(csv))
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("negative preferential rate", func(t *testing.T) {
		csv := `classification_code,agreement_code,origin_country,rate,staging_category,rule_of_origin,safeguard_applicable,effective_from,effective_to
8471.30.00,AUSFTA,USA,-1,A,CTH,false,2005-01-01,
`
		_, err := decodePreferentialRates(strings.NewReader(csv))
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("negative anti-dumping rate", func(t *testing.T) {
		csv := `classification_code,origin_country,kind,rate_kind,rate,case_reference,active,effective_from,effective_to
7208.39.00,CHN,DUMPING,AD_VALOREM,-15.0,ADC2021-014,true,2021-07-01,
`
		_, err := decodeAntiDumpingMeasures(strings.NewReader(csv))
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("wrong column count", func(t *testing.T) {
		csv := `classification_code,kind,rate
8471.30.00,AD_VALOREM,5.00
`
		_, err := decodeGeneralRates(strings.NewReader(csv))
		assert.Error(t, err)
	})
}
